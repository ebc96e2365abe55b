package resource

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// rowDecoder lee campos de un Row acumulando los problemas encontrados.
type rowDecoder struct {
	row      repository.Row
	problems []string
}

func newRowDecoder(row repository.Row) *rowDecoder {
	return &rowDecoder{row: row}
}

func (d *rowDecoder) fail(field, reason string) {
	d.problems = append(d.problems, field+": "+reason)
}

func (d *rowDecoder) err() error {
	if len(d.problems) == 0 {
		return nil
	}
	return fmt.Errorf("registro inválido (%s)", strings.Join(d.problems, "; "))
}

// str campo de texto obligatorio y no vacío.
func (d *rowDecoder) str(field string) string {
	s, ok := d.text(field)
	if !ok {
		return ""
	}
	if strings.TrimSpace(s) == "" {
		d.fail(field, "requerido")
	}
	return s
}

// optStr campo de texto opcional; ausente o nulo = "".
func (d *rowDecoder) optStr(field string) string {
	s, _ := d.text(field)
	return s
}

func (d *rowDecoder) text(field string) (string, bool) {
	v, present := d.row[field]
	if !present || v == nil {
		return "", true
	}
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case [16]byte:
		return uuid.UUID(x).String(), true
	case uuid.UUID:
		return x.String(), true
	case fmt.Stringer:
		return x.String(), true
	default:
		d.fail(field, fmt.Sprintf("tipo %T no es texto", v))
		return "", false
	}
}

// boolean ausente o nulo = false.
func (d *rowDecoder) boolean(field string) bool {
	v, present := d.row[field]
	if !present || v == nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			d.fail(field, "booleano inválido")
		}
		return b
	default:
		d.fail(field, fmt.Sprintf("tipo %T no es booleano", v))
		return false
	}
}

// time marca de tiempo obligatoria.
func (d *rowDecoder) time(field string) time.Time {
	v, present := d.row[field]
	if s, isText := v.(string); !present || v == nil || (isText && strings.TrimSpace(s) == "") {
		d.fail(field, "requerido")
		return time.Time{}
	}
	t := d.optTime(field)
	if t == nil {
		return time.Time{}
	}
	return *t
}

// optTime marca de tiempo opcional; ausente, nula o vacía = nil.
func (d *rowDecoder) optTime(field string) *time.Time {
	v, present := d.row[field]
	if !present || v == nil {
		return nil
	}
	switch x := v.(type) {
	case time.Time:
		return &x
	case *time.Time:
		return x
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return &t
			}
		}
		d.fail(field, "fecha inválida")
		return nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			d.fail(field, "fecha inválida")
			return nil
		}
		t := time.Unix(n, 0).UTC()
		return &t
	default:
		d.fail(field, fmt.Sprintf("tipo %T no es fecha", v))
		return nil
	}
}
