package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// maxReconcileAttempts intentos de leer-o-crear por nombre antes de rendirse.
const maxReconcileAttempts = 3

// ReconcileTags resuelve una lista de nombres a etiquetas, creando las que no
// existen con AutoTagDescription. Los nombres se normalizan y se deduplican;
// el resultado no repite etiquetas (identidad = ID) y sigue el orden de entrada.
//
// Los nombres se resuelven en orden alfabético: dos transacciones con los
// mismos nombres nuevos bloquean las filas en el mismo orden y no se cruzan.
// Si la inserción choca con la restricción única (otra petición creó el mismo
// nombre entre la lectura y la escritura) se relee la fila en lugar de fallar.
func ReconcileTags(ctx context.Context, repo repository.TagRepository, names []string) ([]entity.Tag, error) {
	names = domain.NormalizeNames(names)
	resolved := make(map[string]*entity.Tag, len(names))
	for _, name := range slices.Sorted(slices.Values(names)) {
		tag, err := getOrCreateTag(ctx, repo, name)
		if err != nil {
			return nil, err
		}
		resolved[name] = tag
	}

	out := make([]entity.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		tag := resolved[name]
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		out = append(out, *tag)
	}
	return out, nil
}

func getOrCreateTag(ctx context.Context, repo repository.TagRepository, name string) (*entity.Tag, error) {
	for attempt := 0; attempt < maxReconcileAttempts; attempt++ {
		existing, err := repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		tag := &entity.Tag{
			ID:          uuid.New().String(),
			Name:        name,
			Description: entity.AutoTagDescription,
			CreatedAt:   time.Now(),
		}
		created, err := repo.CreateIfAbsent(ctx, tag)
		if err != nil {
			return nil, err
		}
		if created {
			return tag, nil
		}
		// Perdimos la carrera: la siguiente vuelta relee por nombre.
	}
	return nil, domain.AlreadyExistsf("no se pudo resolver la etiqueta %q por conflictos concurrentes", name)
}
