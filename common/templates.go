package common

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
)

func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": func() time.Time {
			return time.Now()
		},
		"date": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}
}

// LoadTemplates parses every module's views into router. Views share the
// "header" and "footer" blocks defined in common/views/layout.html.
func LoadTemplates(router *gin.Engine, pattern string) {
	router.SetFuncMap(TemplateFuncs())
	router.LoadHTMLGlob(pattern)
}
