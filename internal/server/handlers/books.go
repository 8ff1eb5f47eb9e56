package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/agentstation/shelfmap/internal/server/response"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/filter"
	"github.com/agentstation/shelfmap/pkg/pagination"
)

// BookList is one page of a filtered view.
type BookList struct {
	Books    []books.Card `json:"books"`
	Query    filter.Query `json:"query"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Pages    int          `json:"pages"`
	Total    int          `json:"total"`
	Count    int          `json:"count"`
	HasMore  bool         `json:"has_more"`
	NextPage *int         `json:"next_page,omitempty"`
}

// HandleListBooks handles GET /api/v1/books.
// @Summary List books
// @Description Filter the catalog and return one page of book cards
// @Tags books
// @Produce json
// @Param q query string false "Case-insensitive text matched against title and author"
// @Param language query string false "Exact language"
// @Param year query string false "Exact publication year"
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Books per page"
// @Success 200 {object} response.Response{data=BookList}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/books [get].
func (h *Handlers) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page, err := intParam(params, "page", 1, 1, 1<<20)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	size, err := intParam(params, "page_size", h.app.PageSize(), 1, constants.MaxPageSize)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	q := filter.Query{
		Text:     params.Get("q"),
		Language: params.Get("language"),
		Year:     params.Get("year"),
	}

	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}

	h.cached(w, cat, listKey(q, page, size), func() any {
		view := cat.Filter(q)
		h.app.Metrics().ObserveFilter(len(view))

		slice, more := pagination.PageAt(view, page-1, size)
		list := BookList{
			Books:    books.Cards(slice),
			Query:    q,
			Page:     page,
			PageSize: size,
			Pages:    pagination.Pages(len(view), size),
			Total:    len(view),
			Count:    len(slice),
			HasMore:  more,
		}
		if more {
			next := page + 1
			list.NextPage = &next
		}
		return list
	})
}

// HandleGetBook handles GET /api/v1/books/{isbn}.
// @Summary Get a book
// @Description Return the detail view of one book. The ISBN is matched after normalization.
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} response.Response{data=books.Detail}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/books/{isbn} [get].
func (h *Handlers) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	b, err := cat.Find(isbn)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, b.Detail())
}

// listKey identifies one page of a filtered view. The values are encoded,
// so free text cannot spill into the other fields.
func listKey(q filter.Query, page, size int) string {
	return "books?" + url.Values{
		"q":         {q.Text},
		"language":  {q.Language},
		"year":      {q.Year},
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(size)},
	}.Encode()
}

func intParam(params url.Values, name string, def, lo, hi int) (int, error) {
	raw := params.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, errors.NewValidationError(name, raw, "must be an integer between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
	}
	return n, nil
}
