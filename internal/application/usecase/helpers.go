package usecase

import (
	"strings"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// pageOf construye los metadatos de página de un listado.
func pageOf(f repository.ListFilter, total int) dto.PageResponse {
	return dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}
}

func trimPtr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
