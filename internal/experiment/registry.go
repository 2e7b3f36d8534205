package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/metrics"
	"github.com/san-kum/tripend/internal/models"
)

type Registry struct {
	solvers map[string]func() models.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		solvers: make(map[string]func() models.Solver),
	}

	r.solvers["gauss-jordan"] = func() models.Solver { return models.GaussJordan{} }
	r.solvers["lu"] = func() models.Solver { return models.LU{} }

	return r
}

func (r *Registry) GetSolver(name string) (models.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s (available: %v)", name, r.ListSolvers())
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (dynamo.Method, error) {
	return dynamo.ParseMethod(name)
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(dynamo.Methods))
	for _, m := range dynamo.Methods {
		names = append(names, m.Key())
	}
	return names
}

func (r *Registry) DefaultMetrics(p dynamo.Params) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(p),
	}
}
