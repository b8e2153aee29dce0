package sim

type Phase int

const (
	SeedPopulation Phase = iota
	ComputeFitness
	OrderByFitness
	RemoveUnfit
	BreedNew
	SimulationEnd
)

// String is the label shown above each frame.
func (p Phase) String() string {
	switch p {
	case SeedPopulation:
		return "Seeding the population"
	case ComputeFitness:
		return "Computing fitness"
	case OrderByFitness:
		return "Sorting by fitness"
	case RemoveUnfit:
		return "Removing unfit candidates"
	case BreedNew:
		return "Creating new candidates"
	case SimulationEnd:
		return "End of the Simulation Reached!!"
	default:
		return "unknown phase"
	}
}

// Key is a stable identifier for logs.
func (p Phase) Key() string {
	switch p {
	case SeedPopulation:
		return "seed_population"
	case ComputeFitness:
		return "compute_fitness"
	case OrderByFitness:
		return "order_by_fitness"
	case RemoveUnfit:
		return "remove_unfit"
	case BreedNew:
		return "breed_new"
	case SimulationEnd:
		return "simulation_end"
	default:
		return "unknown"
	}
}
