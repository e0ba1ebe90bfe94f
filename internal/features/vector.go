package features

// Task identifies a tabular prediction task and its feature schema.
type Task string

const (
	TaskCrop  Task = "crop"
	TaskYield Task = "yield"
	TaskRisk  Task = "risk"
)

// Schema is the ordered list of feature names a model was trained on.
// Reordering a schema requires retraining the model.
type Schema []string

// Index returns the position of name in the schema, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}

// Feature schemas per task.
var (
	CropSchema = Schema{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

	YieldSchema = Schema{
		"crop_id", "state_id", "area", "pesticide", "temperature",
		"humidity", "rainfall", "soil_pH", "organic_carbon",
	}

	RiskSchema = Schema{
		"latitude", "longitude", "rainfall", "temperature", "humidity",
		"river_discharge", "water_level", "elevation", "land_cover", "soil_type",
		"population_density", "infrastructure", "historical_floods",
	}
)

// SchemaFor returns the schema of a task.
func SchemaFor(task Task) (Schema, bool) {
	switch task {
	case TaskCrop:
		return CropSchema, true
	case TaskYield:
		return YieldSchema, true
	case TaskRisk:
		return RiskSchema, true
	default:
		return nil, false
	}
}

// Vector is an immutable, ordered feature vector for one task.
type Vector struct {
	task   Task
	values []float64
}

func newVector(task Task, values ...float64) Vector {
	return Vector{task: task, values: values}
}

// Task returns the task the vector was built for.
func (v Vector) Task() Task {
	return v.task
}

// Names returns the schema of the vector.
func (v Vector) Names() Schema {
	s, _ := SchemaFor(v.task)
	return s
}

// Len returns the number of features.
func (v Vector) Len() int {
	return len(v.values)
}

// Values returns a copy of the feature values in schema order.
func (v Vector) Values() []float64 {
	return append([]float64(nil), v.values...)
}

// Float32 returns the values as float32, the element type of model input tensors.
func (v Vector) Float32() []float32 {
	out := make([]float32, len(v.values))
	for i, x := range v.values {
		out[i] = float32(x)
	}
	return out
}

// Get returns the named feature.
func (v Vector) Get(name string) (float64, bool) {
	i := v.Names().Index(name)
	if i < 0 || i >= len(v.values) {
		return 0, false
	}
	return v.values[i], true
}

// Must returns the named feature or zero.
func (v Vector) Must(name string) float64 {
	x, _ := v.Get(name)
	return x
}

// FromValues wraps raw values already in schema order, e.g. when a backend receives a tensor.
func FromValues(task Task, values []float64) (Vector, bool) {
	s, ok := SchemaFor(task)
	if !ok || len(s) != len(values) {
		return Vector{}, false
	}
	return newVector(task, append([]float64(nil), values...)...), true
}
