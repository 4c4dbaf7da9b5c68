package optimizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrZeroCost is returned when a cost vector has a zero component, which makes
// the number of affordable units undefined.
var ErrZeroCost = errors.New("zero cost component")

// ResourceKind names one of the four Travian resources.
type ResourceKind int

const (
	Lumber ResourceKind = iota
	Clay
	Iron
	Crop
)

// NumResourceKinds is the number of components in a Resources value.
const NumResourceKinds = 4

var resourceKindNames = [NumResourceKinds]string{"lumber", "clay", "iron", "crop"}

func (k ResourceKind) String() string {
	if k < 0 || int(k) >= NumResourceKinds {
		return "ResourceKind(" + strconv.Itoa(int(k)) + ")"
	}
	return resourceKindNames[k]
}

// Kinds returns all resource kinds in canonical order.
func Kinds() []ResourceKind {
	return []ResourceKind{Lumber, Clay, Iron, Crop}
}

// Resources is an immutable quantity of lumber, clay, iron and crop.
// Arithmetic is component-wise and returns a new value; components may go
// negative, use HasNegative to detect an overspent budget.
type Resources struct {
	Lumber int `json:"lumber"`
	Clay   int `json:"clay"`
	Iron   int `json:"iron"`
	Crop   int `json:"crop"`
}

// New returns a Resources value with the given components.
func New(lumber, clay, iron, crop int) Resources {
	return Resources{Lumber: lumber, Clay: clay, Iron: iron, Crop: crop}
}

// FromSlice builds a Resources value from exactly four components in
// lumber, clay, iron, crop order.
func FromSlice(values []int) (Resources, error) {
	if len(values) != NumResourceKinds {
		return Resources{}, fmt.Errorf("expected %d resource values (lumber,clay,iron,crop), got %d", NumResourceKinds, len(values))
	}
	return New(values[0], values[1], values[2], values[3]), nil
}

// ParseResources parses a comma-separated "lumber,clay,iron,crop" string.
func ParseResources(s string) (Resources, error) {
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Resources{}, fmt.Errorf("invalid resource value %q: %w", strings.TrimSpace(part), err)
		}
		values = append(values, v)
	}
	return FromSlice(values)
}

// Get returns the component for kind. Panics on an unknown kind.
func (r Resources) Get(kind ResourceKind) int {
	switch kind {
	case Lumber:
		return r.Lumber
	case Clay:
		return r.Clay
	case Iron:
		return r.Iron
	case Crop:
		return r.Crop
	}
	panic(fmt.Sprintf("unknown resource kind %d", int(kind)))
}

// Add returns r + o.
func (r Resources) Add(o Resources) Resources {
	return New(r.Lumber+o.Lumber, r.Clay+o.Clay, r.Iron+o.Iron, r.Crop+o.Crop)
}

// Sub returns r - o.
func (r Resources) Sub(o Resources) Resources {
	return New(r.Lumber-o.Lumber, r.Clay-o.Clay, r.Iron-o.Iron, r.Crop-o.Crop)
}

// Scale returns k * r.
func (r Resources) Scale(k int) Resources {
	return New(k*r.Lumber, k*r.Clay, k*r.Iron, k*r.Crop)
}

// Sum returns the total of all four components.
func (r Resources) Sum() int {
	return r.Lumber + r.Clay + r.Iron + r.Crop
}

// HasNegative reports whether any component is below zero.
func (r Resources) HasNegative() bool {
	return r.Lumber < 0 || r.Clay < 0 || r.Iron < 0 || r.Crop < 0
}

// MaxAffordable returns how many units of cost fit into r: the minimum over
// all components of r[i]/cost[i], using Go's truncating integer division.
// Returns ErrZeroCost if any cost component is zero.
func (r Resources) MaxAffordable(cost Resources) (int, error) {
	units := 0
	for i, kind := range Kinds() {
		c := cost.Get(kind)
		if c == 0 {
			return 0, fmt.Errorf("cannot divide %s=%d by cost %s: %w", kind, r.Get(kind), cost, ErrZeroCost)
		}
		n := r.Get(kind) / c
		if i == 0 || n < units {
			units = n
		}
	}
	return units, nil
}

func (r Resources) String() string {
	return fmt.Sprintf("lumber=%d clay=%d iron=%d crop=%d", r.Lumber, r.Clay, r.Iron, r.Crop)
}
