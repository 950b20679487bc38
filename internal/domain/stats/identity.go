package stats

import (
	"strings"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// IdentityKind origen del identificador de cliente.
type IdentityKind string

const (
	IdentityEmail IdentityKind = "email"
	IdentityPhone IdentityKind = "phone"
)

// CustomerKey identidad de cliente para métricas: email si existe, si no
// teléfono (nunca ambos). La clave lleva etiqueta de origen para que un email
// y un teléfono con el mismo texto jamás colisionen en el mismo bucket.
type CustomerKey struct {
	Kind  IdentityKind
	Value string
}

// CustomerKeyOf resuelve la identidad de cliente de un pedido. ok=false cuando
// el pedido no trae ni email ni teléfono: ese pedido no participa en las
// métricas de clientes.
func CustomerKeyOf(c entity.OrderCustomer) (CustomerKey, bool) {
	if v := strings.TrimSpace(c.Email); v != "" {
		return CustomerKey{Kind: IdentityEmail, Value: strings.ToLower(v)}, true
	}
	if v := strings.TrimSpace(c.Phone); v != "" {
		return CustomerKey{Kind: IdentityPhone, Value: v}, true
	}
	return CustomerKey{}, false
}
