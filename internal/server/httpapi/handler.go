package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/coursework/internal/common"
	"github.com/dmitrijs2005/coursework/internal/server/auth"
	"github.com/dmitrijs2005/coursework/internal/server/models"
)

type loginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

type addProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

type addProductResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Username == nil || req.Password == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	sess, err := s.users.Login(r.Context(), *req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(r.Context(), "Login rejected", "username", *req.Username)
			writeDetail(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.logger.Error(r.Context(), "Login failed", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "username", sess.Username, "role", sess.Role)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt.UTC(),
		Username:  sess.Username,
		Role:      sess.Role,
	})
}

// authorize resolves the caller from the Authorization header and checks its
// role. On failure it writes the response and returns false.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, roles ...string) (*auth.Principal, bool) {
	token, ok := auth.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeDetail(w, http.StatusUnauthorized, msgNotAuthenticated)
		return nil, false
	}

	p, err := s.users.Authenticate(token)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, msgNotAuthenticated)
		return nil, false
	}

	if err := p.Require(roles...); err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			s.logger.Info(r.Context(), "Access denied", "username", p.Username, "role", p.Role)
			writeDetail(w, http.StatusForbidden, msgAccessDenied)
			return nil, false
		}
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return nil, false
	}

	return p, true
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, common.RoleAdmin, common.RolePrivilegedUser); !ok {
		return
	}

	items, err := s.products.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "List products failed", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if len(items) == 0 {
		writeJSON(w, http.StatusOK, messageBody{Message: msgNoProducts})
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, common.RoleAdmin, common.RolePrivilegedUser); !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "product id must be an integer")
		return
	}

	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusNotFound, msgNoSuchProduct)
			return
		}
		s.logger.Error(r.Context(), "Get product failed", "id", id, "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// addProduct answers anonymous callers, those without a "Bearer " header,
// with a bare 401 and no body. Everyone else gets {"detail": ...} errors.
func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	p, ok := s.authorize(w, r, common.RoleAdmin)
	if !ok {
		return
	}

	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Name == nil || req.Price == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "name and price are required")
		return
	}

	created, err := s.products.Add(r.Context(), *req.Name, req.Description, *req.Price)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, common.ErrorConflict):
			writeDetail(w, http.StatusConflict, msgNameNotUnique)
		default:
			s.logger.Error(r.Context(), "Add product failed", "error", err.Error())
			writeDetail(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	s.logger.Info(r.Context(), "Product added", "id", created.ID, "by", p.Username)
	writeJSON(w, http.StatusOK, addProductResponse{Message: msgProductAdded, Product: created})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
