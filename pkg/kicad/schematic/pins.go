package schematic

import (
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

// PinDefs returns the pin definitions of the component's library
// symbol.
func (c *Component) PinDefs() ([]PinDef, error) {
	sym, err := c.sch.Resolver.Resolve(c.LibID)
	if err != nil {
		return nil, err
	}
	return sym.Pins, nil
}

// Pin returns the definition of the pin with the given number.
func (c *Component) Pin(number string) (PinDef, error) {
	pins, err := c.PinDefs()
	if err != nil {
		return PinDef{}, err
	}
	for _, pin := range pins {
		if pin.Number == number {
			return pin, nil
		}
	}
	return PinDef{}, &NotFoundError{Kind: "pin", Key: c.Reference() + "." + number}
}

// PinPosition returns the world-frame position of the pin with the
// given number, applying the component's rotation, mirror and
// translation to the symbol-local pin location.
func (c *Component) PinPosition(number string) (geometry.Point, error) {
	pin, err := c.Pin(number)
	if err != nil {
		return geometry.Point{}, err
	}
	return c.Placement().Apply(pin.Position), nil
}

// PinPositions returns the world-frame position of every pin, keyed by
// pin number.
func (c *Component) PinPositions() (map[string]geometry.Point, error) {
	pins, err := c.PinDefs()
	if err != nil {
		return nil, err
	}
	placement := c.Placement()
	out := make(map[string]geometry.Point, len(pins))
	for _, pin := range pins {
		out[pin.Number] = placement.Apply(pin.Position)
	}
	return out, nil
}
