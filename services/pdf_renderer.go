package services

import (
	"bytes"
	"context"
	"html/template"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromePDFRenderer prints the certificate template to PDF through headless
// Chrome. Rendering runs on a background context so a client disconnect
// mid-delivery cannot cancel it.
type ChromePDFRenderer struct {
	TemplatePath string
}

func NewChromePDFRenderer(templatePath string) *ChromePDFRenderer {
	return &ChromePDFRenderer{TemplatePath: templatePath}
}

func (r *ChromePDFRenderer) Render(data CertificateData) ([]byte, error) {
	html, err := r.renderHTML(data)
	if err != nil {
		return nil, err
	}
	return printToPDF(html)
}

func (r *ChromePDFRenderer) renderHTML(data CertificateData) (string, error) {
	tmpl, err := template.ParseFiles(r.TemplatePath)
	if err != nil {
		return "", err
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
