package docs

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/employees-api/internal/openapi"
)

const uiPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Employees API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      SwaggerUIBundle({ url: "openapi.json", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

// Handler API文档处理器，文档在启动时渲染一次
type Handler struct {
	jsonDoc []byte
	yamlDoc []byte
}

// New 渲染文档并创建处理器
func New(doc *openapi3.T) (*Handler, error) {
	jsonDoc, err := openapi.JSON(doc)
	if err != nil {
		return nil, fmt.Errorf("render openapi json: %w", err)
	}
	yamlDoc, err := openapi.YAML(doc)
	if err != nil {
		return nil, fmt.Errorf("render openapi yaml: %w", err)
	}
	return &Handler{jsonDoc: jsonDoc, yamlDoc: yamlDoc}, nil
}

// RegisterRoutes 注册文档路由，r 应挂载在 /docs 下
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleUI)
	r.Get("/openapi.json", h.handleJSON)
	r.Get("/openapi.yaml", h.handleYAML)
}

func (h *Handler) handleUI(w http.ResponseWriter, r *http.Request) {
	// 相对路径 openapi.json 需要以 / 结尾的基础路径
	if r.URL.Path == "/docs" {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(uiPage))
}

func (h *Handler) handleJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.jsonDoc)
}

func (h *Handler) handleYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(h.yamlDoc)
}
