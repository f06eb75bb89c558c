package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kritika/internal/platform/middleware"
	requestutil "kritika/internal/platform/request"
	"kritika/internal/platform/respond"
	"kritika/internal/platform/validate"
	"kritika/pkg/convert"
	"kritika/pkg/pagination"
	"kritika/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the title endpoints. Reads are public; writes are
// restricted to administrators.
//
// # Endpoints
//   - GET    /          : Filtered listing (?category=&genre=&year=&search=).
//     The genre parameter accepts a comma-separated list of slugs.
//   - POST   /          : Create a title.
//   - GET    /{titleID} : Fetch one title with its computed rating.
//   - PATCH  /{titleID} : Partial edit; a genre list replaces the whole set.
//   - DELETE /{titleID} : Remove a title and, transitively, its reviews.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCatalogWrite)
		r.Post("/", handler.create)
		r.Patch("/{titleID}", handler.update)
		r.Delete("/{titleID}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		CategorySlug: queryValues.Get("category"),
		GenreSlugs:   query.StringSlice(queryValues.Get("genre")),
		Year:         convert.ToInt(queryValues.Get("year")),
		Search:       queryValues.Get("search"),
	}

	titles, total, err := handler.service.List(request.Context(), params, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldCategory, input.Category).
		Custom(FieldGenre, len(input.Genre) == 0, "At least one genre is required")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, NameMaxLength)
	}
	if input.Category != nil {
		validator.Required(FieldCategory, *input.Category)
	}
	if input.Genre != nil {
		validator.Custom(FieldGenre, len(*input.Genre) == 0, "At least one genre is required")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
