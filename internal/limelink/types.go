package limelink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// NotInstalledOptions says where to send users who lack the app.
type NotInstalledOptions struct {
	CustomURL string `json:"custom_url" validate:"required,max=500"`
}

// PlatformOptions configures deep linking for one mobile platform.
type PlatformOptions struct {
	ApplicationID       string               `json:"application_id" validate:"required,max=100"`
	RequestURI          string               `json:"request_uri,omitempty"`
	NotInstalledOptions *NotInstalledOptions `json:"not_installed_options,omitempty" validate:"omitempty"`
}

// AdditionalOptions holds social preview and UTM fields.
type AdditionalOptions struct {
	PreviewTitle       string `json:"preview_title" validate:"required,max=100"`
	PreviewDescription string `json:"preview_description" validate:"required,max=200"`
	PreviewImageURL    string `json:"preview_image_url" validate:"required,max=500"`
	UTMSource          string `json:"utm_source,omitempty"`
	UTMMedium          string `json:"utm_medium,omitempty"`
	UTMCampaign        string `json:"utm_campaign,omitempty"`
}

// CreateLinkRequest is the body of POST /core/link.
type CreateLinkRequest struct {
	DynamicLinkSuffix string             `json:"dynamic_link_suffix" validate:"required,max=50"`
	DynamicLinkURL    string             `json:"dynamic_link_url" validate:"required,url,max=500"`
	DynamicLinkName   string             `json:"dynamic_link_name" validate:"required,max=100"`
	ProjectID         string             `json:"project_id" validate:"required"`
	StatsFlag         *bool              `json:"stats_flag,omitempty"`
	AppleOptions      *PlatformOptions   `json:"apple_options,omitempty" validate:"omitempty"`
	AndroidOptions    *PlatformOptions   `json:"android_options,omitempty" validate:"omitempty"`
	AdditionalOptions *AdditionalOptions `json:"additional_options,omitempty" validate:"omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks field presence and length limits.
func (r *CreateLinkRequest) Validate() error {
	err := requestValidator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "CreateLinkRequest.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

// Client talks to the Limelink REST API. Responses are returned verbatim.
type Client interface {
	CreateLink(ctx context.Context, req *CreateLinkRequest) (json.RawMessage, error)
	GetLinkBySuffix(ctx context.Context, projectID, suffix string) (json.RawMessage, error)
}
