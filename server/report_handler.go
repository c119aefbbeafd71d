package server

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"github.com/techagentng/ecotrack/server/response"
)

// Supported report image types.
func isSupportedImage(filename string) bool {
	switch filepath.Ext(filename) {
	case ".png", ".jpeg", ".jpg":
		return true
	}
	return false
}

// handleSubmitReport accepts a multipart form: location, waste_type, amount,
// optional verification_result, and an optional image file which is pushed
// to object storage before the report row is written.
func (s *Server) handleSubmitReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		request := &models.CreateReportRequest{
			Location:           c.PostForm("location"),
			WasteType:          c.PostForm("waste_type"),
			Amount:             c.PostForm("amount"),
			VerificationResult: c.PostForm("verification_result"),
		}

		fileHeader, err := c.FormFile("image")
		if err == nil && fileHeader != nil {
			if !isSupportedImage(fileHeader.Filename) {
				response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unsupported image type", http.StatusBadRequest))
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, errs.ErrValidation)
				return
			}
			defer file.Close()

			imageURL, err := s.MediaService.UploadReportImage(c.Request.Context(),
				fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
			if err != nil {
				log.Printf("report image upload failed: %v", err)
				response.JSON(c, "", http.StatusInternalServerError, nil, err)
				return
			}
			request.ImageURL = imageURL
		}

		report, err := s.ReportService.SubmitReport(user.ID, request)
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Report submitted successfully", http.StatusCreated, report, nil)
	}
}

// handleVerifyWaste classifies an uploaded image before submission; the
// client echoes the result back in the submit form.
func (s *Server) handleVerifyWaste() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("image file is required", http.StatusBadRequest))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ErrValidation)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ErrValidation)
			return
		}

		result, err := s.VerificationService.VerifyWaste(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Waste verified", http.StatusOK, result, nil)
	}
}

func (s *Server) handleGetRecentReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit <= 0 {
			limit = 10
		}

		reports, err := s.ReportService.GetRecentReports(limit)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleGetReportByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID := c.Param("reportID")

		report, err := s.ReportService.GetReportByID(reportID)
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, report, nil)
	}
}

func (s *Server) handleCollectReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		reportID := c.Param("reportID")

		report, err := s.ReportService.CollectReport(reportID, user.ID)
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Report collected", http.StatusOK, report, nil)
	}
}

// handleSearchAddress resolves a free-text query to a formatted address;
// lookup failures return an empty location rather than an error.
func (s *Server) handleSearchAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")

		address, err := s.GeocodeService.SearchAddress(c.Request.Context(), query)
		if err != nil {
			log.Printf("address search failed: %v", err)
			address = ""
		}

		response.JSON(c, "", http.StatusOK, gin.H{"location": address}, nil)
	}
}
