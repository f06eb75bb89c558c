package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kritika/internal/platform/middleware"
	requestutil "kritika/internal/platform/request"
	"kritika/internal/platform/respond"
	"kritika/internal/platform/validate"
	"kritika/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the genre endpoints. Listing is public; mutation is
// restricted to administrators.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCatalogWrite)
		r.Post("/", handler.create)
		r.Delete("/{slug}", handler.delete)
	})

	return router
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.service.List(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength)
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug).
			MaxLen(FieldSlug, input.Slug, SlugMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
