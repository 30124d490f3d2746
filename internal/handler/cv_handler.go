package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cvGenerateData struct {
	HTML   string  `json:"html"`
	URL    *string `json:"url"`
	PDFURL *string `json:"pdfUrl"`
}

type cvGenerateResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    cvGenerateData `json:"data"`
}

// GenerateCV renders the CV and publishes it when storage is configured.
func (a *API) GenerateCV(c *gin.Context) {
	result, err := a.generator.Generate(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, cvGenerateResponse{
		Success: true,
		Message: "CV generated successfully",
		Data: cvGenerateData{
			HTML:   result.HTML,
			URL:    result.PublicURL,
			PDFURL: result.PDFURL,
		},
	})
}

// ShowCV serves a live rendering of the CV document.
func (a *API) ShowCV(c *gin.Context) {
	html, err := a.generator.Render()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
