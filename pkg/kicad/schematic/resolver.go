package schematic

// SymbolResolver maps a library identifier like "Device:R" to its pin
// definitions. The default implementation reads the document's
// embedded lib_symbols section; callers with external libraries can
// install their own.
type SymbolResolver interface {
	Resolve(libID string) (*LibSymbol, error)
}

// embeddedResolver looks up symbols in the document's own lib_symbols
// section. KiCad writes every used symbol there, so a schematic is
// self-contained.
type embeddedResolver struct {
	sch *Schematic
}

func (r *embeddedResolver) Resolve(libID string) (*LibSymbol, error) {
	for _, sym := range r.sch.LibSymbols {
		if sym.Name == libID {
			return sym, nil
		}
	}
	return nil, &SymbolNotFoundError{LibID: libID}
}
