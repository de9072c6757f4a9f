package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Josue-Alexander/gestionitp/internal/console/session"
)

// ErrSessionExpired marca un 401/403 del servicio: la sesión local ya se
// cerró cuando la llamada devuelve este error.
var ErrSessionExpired = errors.New("la sesión ha expirado, inicia sesión de nuevo")

// APIError es cualquier otra respuesta no exitosa, con el mensaje que envió
// el servicio.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("el servicio respondió %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

func New(baseURL string, s *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: s,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.session.Logout()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorMessage extrae el campo error/message del cuerpo JSON del servicio.
func errorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func idPath(resource string, id int) string {
	return resource + "/" + strconv.Itoa(id)
}

func withDepartment(path string, departamentoID *int) string {
	if departamentoID == nil {
		return path
	}
	q := url.Values{"departamento": {strconv.Itoa(*departamentoID)}}
	return path + "?" + q.Encode()
}
