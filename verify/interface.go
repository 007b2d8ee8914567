package verify

import (
	"log"
	"sort"

	"github.com/pkg/errors"

	"github.com/powlib/sim"
)

// An Interface groups the signal handles of one hardware interface,
// partitioned into a protocol-defined set of control signals and an open
// set of data signals. The Interface shares the handles with the simulator;
// it does not own them.
type Interface struct {
	cntrl map[string]*sim.Signal
	data  map[string]*sim.Signal
}

// NewInterface builds an interface from named signal handles. Every name in
// cntrlNames must be present in signals; every handle must be non-nil.
// Names not declared as control are data signals. Violations fail here, at
// construction, not at first use.
func NewInterface(
	cntrlNames []string,
	signals map[string]*sim.Signal,
) (*Interface, error) {
	i := &Interface{
		cntrl: make(map[string]*sim.Signal),
		data:  make(map[string]*sim.Signal),
	}

	isCntrl := make(map[string]bool)
	for _, name := range cntrlNames {
		isCntrl[name] = true
	}

	for name, sig := range signals {
		if sig == nil {
			return nil, errors.Errorf("signal %q is not a signal handle", name)
		}
		if isCntrl[name] {
			i.cntrl[name] = sig
		} else {
			i.data[name] = sig
		}
	}

	for _, name := range cntrlNames {
		if _, found := i.cntrl[name]; !found {
			return nil, errors.Errorf("control signal %q is missing", name)
		}
	}

	return i, nil
}

// Control returns the handle of a declared control signal.
func (i *Interface) Control(name string) *sim.Signal {
	sig, found := i.cntrl[name]
	if !found {
		log.Panicf("%q is not a control signal of the interface", name)
	}

	return sig
}

// Data returns the handle of a data signal.
func (i *Interface) Data(name string) *sim.Signal {
	sig, found := i.data[name]
	if !found {
		log.Panicf("%q is not a data signal of the interface", name)
	}

	return sig
}

// DataNames returns the names of the data signals in sorted order.
func (i *Interface) DataNames() []string {
	names := make([]string, 0, len(i.data))
	for name := range i.data {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Transaction projects the data-signal subset into a Transaction, applying
// the given overrides where present and nil elsewhere.
func (i *Interface) Transaction(overrides Transaction) Transaction {
	trans := Transaction{}
	for name := range i.data {
		if value, found := overrides[name]; found {
			trans[name] = value
		} else {
			trans[name] = nil
		}
	}

	return trans
}

// Write drives the transaction's values onto the data signals. Control
// signals named in the transaction are skipped; nil values leave the signal
// untouched. Naming a signal the interface does not have, or carrying a
// value no signal can take, is a programming error.
func (i *Interface) Write(trans Transaction) {
	for name, value := range trans {
		if _, found := i.cntrl[name]; found {
			continue
		}
		if value == nil {
			continue
		}

		sig, found := i.data[name]
		if !found {
			log.Panicf("transaction names %q, not a data signal", name)
		}

		sig.Set(toValue(sig.Width(), name, value))
	}
}

// Read samples every data signal into a Transaction of sim.Values.
func (i *Interface) Read() Transaction {
	trans := Transaction{}
	for name, sig := range i.data {
		trans[name] = sig.Value()
	}

	return trans
}

func toValue(width int, name string, value interface{}) sim.Value {
	switch v := value.(type) {
	case sim.Value:
		if v.Width() != width {
			log.Panicf("value for %q is %d bits wide, signal is %d",
				name, v.Width(), width)
		}
		return v
	case uint64:
		return sim.ValueOf(width, v)
	case int:
		if v < 0 {
			log.Panicf("value for %q is negative", name)
		}
		return sim.ValueOf(width, uint64(v))
	}

	log.Panicf("value for %q has unsupported type %T", name, value)
	return sim.Value{}
}
