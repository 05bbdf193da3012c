package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"

	openaigo "github.com/sashabaranov/go-openai"

	"storycast/internal/provider"
)

// convertError maps SDK and transport failures onto *provider.Error so the
// retry classifier never sees a vendor type.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openaigo.APIError
	if errors.As(err, &apiErr) {
		perr := &provider.Error{
			Provider: ProviderName,
			Status:   apiErr.HTTPStatusCode,
			Code:     codeString(apiErr.Code),
			Type:     apiErr.Type,
			Message:  apiErr.Message,
			Err:      err,
		}
		if apiErr.InnerError != nil && apiErr.InnerError.Code != "" {
			perr.Nested = apiErr.InnerError.Code
		}
		return perr
	}

	var reqErr *openaigo.RequestError
	if errors.As(err, &reqErr) {
		perr := &provider.Error{
			Provider: ProviderName,
			Status:   reqErr.HTTPStatusCode,
			Nested:   nestedMessage(reqErr.Body),
			Err:      err,
		}
		if reqErr.Err != nil {
			perr.Message = reqErr.Err.Error()
		}
		return perr
	}

	switch {
	case errors.Is(err, syscall.ECONNRESET):
		return &provider.Error{Provider: ProviderName, Code: provider.CodeConnReset, Err: err}
	case errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, context.DeadlineExceeded):
		return &provider.Error{Provider: ProviderName, Code: provider.CodeTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &provider.Error{Provider: ProviderName, Code: provider.CodeTimeout, Err: err}
	}

	return err
}

func codeString(code any) string {
	switch c := code.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		if c == 0 {
			return ""
		}
		return strconv.Itoa(c)
	default:
		return fmt.Sprint(c)
	}
}

// nestedMessage pulls error.message out of a raw error body, which proxies in
// front of the API often wrap around the real failure.
func nestedMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error.Message != "" {
		return payload.Error.Message
	}
	return payload.Message
}
