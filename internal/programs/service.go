package programs

import (
	"context"
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"program-portal-go/internal/content"
	"program-portal-go/internal/model"
	"program-portal-go/internal/store"
	"sort"
)

var ErrNotFound = errors.New("program not found")

// Service builds program listings and program detail pages from a record store.
type Service struct {
	gateway store.Gateway
	tables  Tables
}

func NewService(gateway store.Gateway, tables Tables) *Service {
	return &Service{
		gateway: gateway,
		tables:  tables,
	}
}

func (s *Service) List(ctx context.Context) ([]model.ProgramSummary, error) {
	records, err := s.gateway.Select(ctx, store.Query{
		Table:  s.tables.Programs,
		Fields: summaryFields,
		Sort:   []store.Sort{{Field: FieldName, Direction: store.Asc}},
		Limit:  ListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}

	items := make([]model.ProgramSummary, 0, len(records))
	for _, r := range records {
		items = append(items, model.ProgramSummary{
			Slug:        r.String(FieldSlug),
			Name:        r.String(FieldName),
			Description: r.String(FieldDescription),
		})
	}

	return items, nil
}

// Detail returns the program with the given slug and all of its linked
// content. It returns ErrNotFound without touching the child tables when no
// program matches.
func (s *Service) Detail(ctx context.Context, slug string) (model.ProgramDetail, error) {
	program, err := s.findProgramBySlug(ctx, slug)
	if err != nil {
		return model.ProgramDetail{}, err
	}

	var modules, manuals, forms, resources []store.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		modules, err = s.listChildren(gctx, s.tables.Modules, slug, moduleFields,
			[]store.Sort{{Field: FieldSortOrder, Direction: store.Asc}}, ModuleLimit)
		return err
	})
	g.Go(func() error {
		var err error
		manuals, err = s.listChildren(gctx, s.tables.Manuals, slug, manualFields, nil, ManualLimit)
		return err
	})
	g.Go(func() error {
		var err error
		forms, err = s.listChildren(gctx, s.tables.Forms, slug, formFields, nil, FormLimit)
		return err
	})
	g.Go(func() error {
		var err error
		resources, err = s.listChildren(gctx, s.tables.Resources, slug, resourceFields, nil, ResourceLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ProgramDetail{}, err
	}

	detail := model.ProgramDetail{
		Slug:      program.Slug,
		Title:     program.Name,
		Subtitle:  program.Description,
		Overview:  content.Segment(program.Overview),
		Modules:   toModules(modules),
		Manuals:   toManuals(manuals),
		Forms:     toForms(forms),
		Resources: toResources(resources),
	}

	log.WithFields(log.Fields{
		"slug":      slug,
		"modules":   len(detail.Modules),
		"manuals":   len(detail.Manuals),
		"forms":     len(detail.Forms),
		"resources": len(detail.Resources),
	}).Debug("assembled program detail")

	return detail, nil
}

func (s *Service) findProgramBySlug(ctx context.Context, slug string) (model.Program, error) {
	records, err := s.gateway.Select(ctx, store.Query{
		Table:  s.tables.Programs,
		Where:  store.Equals{Field: FieldSlug, Value: slug},
		Fields: programFields,
		Limit:  1,
	})
	if err != nil {
		return model.Program{}, fmt.Errorf("querying for program by slug: %w", err)
	}
	if len(records) == 0 {
		return model.Program{}, ErrNotFound
	}

	r := records[0]
	return model.Program{
		ID:          r.ID,
		Slug:        r.String(FieldSlug),
		Name:        r.String(FieldName),
		Description: r.String(FieldDescription),
		Overview:    r.String(FieldOverview),
	}, nil
}

func (s *Service) listChildren(ctx context.Context, table, slug string, fields []string, sorts []store.Sort, limit int) ([]store.Record, error) {
	records, err := s.gateway.Select(ctx, store.Query{
		Table:  table,
		Where:  store.Contains{Field: FieldPrograms, Value: slug},
		Fields: fields,
		Sort:   sorts,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s for program: %w", table, err)
	}

	return records, nil
}

func toModules(records []store.Record) []model.Module {
	modules := make([]model.Module, 0, len(records))
	for _, r := range records {
		url, _ := content.ResolveURL(r.Fields[FieldFileURL], r.Fields[FieldFile])
		m := model.Module{
			ID:       r.ID,
			Name:     r.String(FieldName),
			Duration: r.String(FieldDuration),
			FileURL:  url,
		}
		if order, ok := r.Number(FieldSortOrder); ok {
			m.SortOrder = &order
		}
		modules = append(modules, m)
	}

	sortModules(modules)
	return modules
}

// sortModules orders modules by ascending sort order. Modules without one go
// last. Ties keep the store's order.
func sortModules(modules []model.Module) {
	sort.SliceStable(modules, func(i, j int) bool {
		a, b := modules[i].SortOrder, modules[j].SortOrder
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

func toManuals(records []store.Record) []model.Manual {
	manuals := make([]model.Manual, 0, len(records))
	for _, r := range records {
		url, _ := content.ResolveURL(r.Fields[FieldFileURL], r.Fields[FieldFile])
		manuals = append(manuals, model.Manual{
			ID:      r.ID,
			Name:    r.String(FieldName),
			FileURL: url,
		})
	}
	return manuals
}

func toForms(records []store.Record) []model.Form {
	forms := make([]model.Form, 0, len(records))
	for _, r := range records {
		url, _ := content.ResolveURL(r.Fields[FieldFileURL], r.Fields[FieldFile])
		forms = append(forms, model.Form{
			ID:       r.ID,
			Name:     r.String(FieldName),
			Category: r.String(FieldCategory),
			FileURL:  url,
		})
	}
	return forms
}

func toResources(records []store.Record) []model.Resource {
	resources := make([]model.Resource, 0, len(records))
	for _, r := range records {
		url, _ := content.ResolveURL(r.Fields[FieldURL], r.Fields[FieldFile])
		resources = append(resources, model.Resource{
			ID:       r.ID,
			Name:     r.String(FieldName),
			Category: r.String(FieldCategory),
			URL:      url,
		})
	}
	return resources
}
