package services

// Plan tiers. The ordering is a fixed partial order, not a numeric scale:
// free is satisfied by anything, individual by individual or business,
// business only by business.
const (
	PlanFree       = "free"
	PlanIndividual = "individual"
	PlanBusiness   = "business"
)

// PlanAllows reports whether a user on plan `have` may enter content that
// requires plan `required`. Unknown required plans fail closed.
func PlanAllows(required, have string) bool {
	switch required {
	case PlanFree:
		return true
	case PlanIndividual:
		return have == PlanIndividual || have == PlanBusiness
	case PlanBusiness:
		return have == PlanBusiness
	default:
		return false
	}
}

// PlanInfo is the static catalog entry surfaced on the plans page.
type PlanInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Features  []string `json:"features"`
	IsPopular bool     `json:"is_popular"`
}

func PlanCatalog() []PlanInfo {
	return []PlanInfo{
		{
			ID:    PlanFree,
			Name:  "Plan Gratuito",
			Price: 0,
			Features: []string{
				"Acceso a cursos de Arte, Matemáticas e Inglés",
				"Videos educativos",
				"Cuestionarios básicos",
			},
		},
		{
			ID:    PlanIndividual,
			Name:  "Plan Individual",
			Price: 31.00,
			Features: []string{
				"Acceso a TODOS los cursos",
				"Certificados de finalización",
				"Exámenes completos",
				"Sin publicidad",
			},
			IsPopular: true,
		},
		{
			ID:    PlanBusiness,
			Name:  "Plan Business",
			Price: 99.99,
			Features: []string{
				"Todo lo del Plan Individual",
				"Cursos Avanzados Exclusivos",
				"Panel para padres/maestros",
				"Soporte 24/7",
			},
		},
	}
}

// ValidPlan reports whether id names a known tier.
func ValidPlan(id string) bool {
	return id == PlanFree || id == PlanIndividual || id == PlanBusiness
}
