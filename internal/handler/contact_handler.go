package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/model"
	"github.com/portfolio/internal/service"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/contact_request.json
var contactRequestSchemaJSON string

var contactRequestSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(contactRequestSchemaJSON))
	if err != nil {
		panic(err)
	}
	return schema
}()

// maxContactBody caps the size of a contact form submission.
const maxContactBody = 64 << 10

type contactRequestPayload struct {
	Data *struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Company *string `json:"company"`
		Subject string  `json:"subject"`
		Message string  `json:"message"`
	} `json:"data"`
}

type contactRequestResponse struct {
	Data    model.Entry[model.ContactRequest] `json:"data"`
	Message string                            `json:"message"`
}

// CreateContactRequest stores a public contact form submission as a draft.
func (a *API) CreateContactRequest(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxContactBody+1))
	if err != nil {
		respondMessageError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body) > maxContactBody {
		respondMessageError(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	input, err := decodeContactRequest(body)
	if err != nil {
		respondMessageError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.contacts.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactMissingFields):
			respondMessageError(c, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrContactInvalidEmail):
			respondMessageError(c, http.StatusBadRequest, "Invalid email format")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, contactRequestResponse{
		Data:    *entry,
		Message: "Contact request submitted successfully",
	})
}

// decodeContactRequest validates body against the contact schema. Unparseable JSON reads
// as an empty submission so it fails the required-field check instead.
func decodeContactRequest(body []byte) (service.ContactRequestInput, error) {
	var input service.ContactRequestInput
	if len(strings.TrimSpace(string(body))) == 0 || !json.Valid(body) {
		return input, nil
	}

	result, err := contactRequestSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return input, nil
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return input, errors.New("Invalid request body: " + strings.Join(details, "; "))
	}

	var payload contactRequestPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Data == nil {
		return input, nil
	}

	input.Name = payload.Data.Name
	input.Email = payload.Data.Email
	input.Company = payload.Data.Company
	input.Subject = payload.Data.Subject
	input.Message = payload.Data.Message
	return input, nil
}
