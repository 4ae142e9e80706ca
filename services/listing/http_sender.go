package listing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"eventify/models"
)

// HTTPSender posts payloads to a remote listing API: POST {base}/api/services to
// create, PUT {base}/api/services/{id} to update.
type HTTPSender struct {
	BaseURL string
	Client  *http.Client
	Open    Opener
}

func NewHTTPSender(baseURL string, open Opener) *HTTPSender {
	return &HTTPSender{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
		Open:    open,
	}
}

// TransportError is returned when the listing API answers with a non 2xx status.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("listing api returned %d: %s", e.StatusCode, e.Body)
}

func (s *HTTPSender) Send(ctx context.Context, p *Payload) (*models.Service, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := p.WriteMultipart(mw, s.Open); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	method, url := http.MethodPost, s.BaseURL+"/api/services"
	if p.ServiceID != "" {
		method, url = http.MethodPut, url+"/"+p.ServiceID
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return DecodeService(data)
}
