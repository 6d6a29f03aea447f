package pixhttp

import (
	"embed"
	"html/template"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type pageData struct {
	Payload     string
	QRCode      template.URL
	Beneficiary string
	City        string
	Amount      string
	Description string
}
