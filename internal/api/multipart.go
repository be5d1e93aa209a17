package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"mercauca/internal/domain"
)

// Upload is the image file attached to a new product
type Upload struct {
	Name   string
	Reader io.Reader
}

// CreateProduct publishes a product listing. The form is streamed as
// multipart/form-data, so wrapping image.Reader observes upload progress.
func (c *Client) CreateProduct(ctx context.Context, token string, form domain.ProductForm, image Upload) error {
	if image.Reader == nil {
		return fmt.Errorf("failed to create product: missing image")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeProductForm(mw, form, image))
	}()

	_, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/Productos",
		token:       token,
		stream:      pr,
		contentType: mw.FormDataContentType(),
	})
	// unblocks the writer when the request ended before the body was consumed
	pr.Close()
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func writeProductForm(mw *multipart.Writer, form domain.ProductForm, image Upload) error {
	fields := []struct{ name, value string }{
		{"idUsuario", form.UserID},
		{"titulo", form.Title},
		{"descripcion", form.Description},
		{"marca", form.Brand},
		{"idCondicion", form.ConditionID},
		{"idCategoria", form.CategoryID},
		{"precio", strings.TrimSpace(form.Price)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return err
		}
	}

	name := image.Name
	if name == "" {
		name = "imagen"
	}
	part, err := mw.CreateFormFile("imagen", name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, image.Reader); err != nil {
		return err
	}
	return mw.Close()
}
