package adapter

import (
	_ "embed"
	"html/template"
)

const indexTemplateName = "index.html"

//go:embed templates/index.html
var indexPage string

var indexTemplate = template.Must(template.New(indexTemplateName).Parse(indexPage))
