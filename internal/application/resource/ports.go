package resource

import (
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// PrincipalSource entrega la identidad autenticada actual. Lo implementa *session.Session.
type PrincipalSource interface {
	CurrentPrincipal() (string, bool)
}

// Schema describe cómo se guarda un tipo T en el almacén remoto y cómo se valida al leerlo.
// Decode es la frontera: un registro mal formado produce error, nunca un T a medio llenar.
type Schema[T any] interface {
	Spec() repository.TableSpec
	// OwnerField columna que acota el acceso (id_usuario, o id_cliente en dependientes).
	OwnerField() string
	// OrderField columna del orden por defecto (descendente).
	OrderField() string
	Decode(row repository.Row) (T, error)
	ID(v T) string
	Owner(v T) string
	CreatedAt(v T) time.Time
}
