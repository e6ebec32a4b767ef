package employee

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/employees-api/internal/logging"
	"github.com/zhouzirui/employees-api/internal/model/employee"
	"github.com/zhouzirui/employees-api/internal/service/events"
	"github.com/zhouzirui/employees-api/pkg/utils"
)

const (
	msgNotFound    = "Employee not found"
	msgInvalidBody = "invalid request body"
	msgTooLarge    = "request body too large"
	msgInternal    = "Something goes wrong"

	// maxBodyBytes caps JSON request bodies at 100kb.
	maxBodyBytes = 100 << 10
)

// Publisher receives committed changes. *events.Hub satisfies it.
type Publisher interface {
	Publish(eventType events.Type, item employee.Employee) events.Event
}

// Handler 员工资源的HTTP处理器
type Handler struct {
	store     employee.Store
	publisher Publisher
	logger    *slog.Logger
}

// New 创建员工处理器，publisher 与 logger 可以为 nil
func New(store employee.Store, publisher Publisher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterRoutes 注册员工相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Post("/employees", h.handleCreate)
	r.Get("/employees/{id}", h.handleGet)
	r.Patch("/employees/{id}", h.handleUpdate)
	r.Delete("/employees/{id}", h.handleDelete)
}

// handleList 列出所有员工
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

// handleGet 按id查询员工
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	item, err := h.store.Get(id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

// handleCreate 创建员工
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employee.Input
	if !decodeBody(w, r, &payload) {
		return
	}

	item, err := h.store.Create(payload)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.publish(events.TypeCreated, item)
	utils.RespondJSON(w, http.StatusOK, item)
}

// handleUpdate 部分更新员工
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var payload employee.Patch
	if !decodeBody(w, r, &payload) {
		return
	}

	item, err := h.store.Update(id, payload)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if !payload.Empty() {
		h.publish(events.TypeUpdated, item)
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

// handleDelete 删除员工
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	item, err := h.store.Delete(id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.publish(events.TypeDeleted, item)
	utils.RespondNoContent(w)
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, employee.ErrInvalidInput):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("employee store failure",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		utils.RespondError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (h *Handler) publish(eventType events.Type, item employee.Employee) {
	if h.publisher == nil {
		return
	}
	event := h.publisher.Publish(eventType, item)
	h.logger.Debug("employee change published", "event", event.ID, "type", eventType, "employee", item.ID)
}

// decodeBody 解析单个JSON请求体，失败时直接写出错误响应
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	err := dec.Decode(v)
	if err == nil {
		// 请求体只能包含一个JSON值
		if _, tokErr := dec.Token(); !errors.Is(tokErr, io.EOF) {
			err = errors.New("unexpected data after JSON body")
		}
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RespondError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return false
	}
	utils.RespondError(w, http.StatusBadRequest, msgInvalidBody)
	return false
}

// parseID 解析路径中的id；无法解析的id不可能匹配任何员工
func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
