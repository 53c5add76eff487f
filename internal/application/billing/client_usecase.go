package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/plate-rental-api/internal/application/dto"
	"github.com/jhoicas/plate-rental-api/internal/domain"
	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
	"github.com/jhoicas/plate-rental-api/internal/domain/repository"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// ClientUseCase consultas de clientes de alquiler.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// List lista clientes por nombre.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := &dto.ClientListResponse{
		Items: make([]dto.ClientResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, toClientResponse(c))
	}
	return out, nil
}

// Get devuelve un cliente por ID.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toClientResponse(c)
	return &resp, nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, DailyRate: money.FromDecimal(c.DailyRate)}
}
