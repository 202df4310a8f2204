package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httpresp"
)

// Resource serves list/create/update/delete for one staff-managed entity.
// Kind names the entity in user messages. Save receives a nil id on create.
type Resource[In any] struct {
	Kind   string
	List   func(c *gin.Context) ([]any, error)
	Save   func(c *gin.Context, id *uint, in In) (any, error)
	Delete func(c *gin.Context, id uint) error
}

func (r Resource[In]) Register(g *gin.RouterGroup, path string) {
	g.GET(path, r.list)
	g.POST(path, r.create)
	g.PUT(path+"/:id", r.update)
	g.DELETE(path+"/:id", r.delete)
}

func (r Resource[In]) list(c *gin.Context) {
	items, err := r.List(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

func (r Resource[In]) create(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados de "+r.Kind+" inválidos.")
		return
	}

	out, err := r.Save(c, nil, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (r Resource[In]) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados de "+r.Kind+" inválidos.")
		return
	}

	out, err := r.Save(c, &id, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (r Resource[In]) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := r.Delete(c, id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// items converts a typed slice for Resource.List.
func items[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
