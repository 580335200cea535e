package types

// Personalizacion is a single customization chosen for a line item, e.g.
// {"grupo": "Punto de coccion", "opcion": "Jugoso"}.
type Personalizacion struct {
	Grupo  string `json:"grupo"`
	Opcion string `json:"opcion"`
}

// Personalizaciones is stored as a jsonb column on pedido items.
type Personalizaciones []Personalizacion
