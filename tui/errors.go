package tui

import (
	"errors"
	"fmt"
	"strings"

	"prism/apierr"
	"prism/config"
	"prism/docparse"
)

// ErrorMessage turns a client error into the text shown to the user
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, apierr.ErrUnknownPerspective):
		return "⚠️ Unknown perspective. Choose one of: " + strings.Join(perspectiveKeys(), ", ")
	case errors.Is(err, apierr.ErrMissingField):
		return "⚠️ Could not build the prompt: " + err.Error()
	}

	e, ok := apierr.As(err)
	if !ok {
		return fmt.Sprintf("⚠️ Something went wrong during analysis\n\n%s\n\nIf this keeps happening, check your API key and network connection.", err)
	}

	switch e.Kind {
	case apierr.KindMissingCredential:
		return "⚠️ API key not set\n\n" + config.GetAPIKeyHelp()
	case apierr.KindAuth:
		return "⚠️ API key error\n\nThe API key is missing or invalid. Check that UPSTAGE_API_KEY is set correctly in your .env file."
	case apierr.KindConnection:
		return "⚠️ Connection error\n\nCould not reach the server. Check your internet connection."
	case apierr.KindTimeout:
		return "⚠️ The request timed out. Please try again."
	case apierr.KindUnsupportedFormat:
		return fmt.Sprintf("⚠️ Unsupported file format: %s\nSupported formats: %s", e.Detail, supportedFormats())
	case apierr.KindPayloadTooLarge:
		return "⚠️ The file is too large. Please use a smaller file."
	case apierr.KindServer:
		return fmt.Sprintf("⚠️ API error (status code: %d)", e.Status)
	case apierr.KindNoTextFound:
		return fmt.Sprintf("⚠️ Could not extract any text from the document. (response keys: [%s])", strings.Join(e.Keys, ", "))
	default:
		return fmt.Sprintf("⚠️ Something went wrong during analysis\n\n%s\n\nIf this keeps happening, check your API key and network connection.", err)
	}
}

func supportedFormats() string {
	exts := docparse.SupportedExtensions()
	for i, ext := range exts {
		exts[i] = strings.ToUpper(ext)
	}
	return strings.Join(exts, ", ")
}
