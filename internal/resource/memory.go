package resource

// MemoryProvider is a Provider backed by maps. It is used by hosts that
// decode resources themselves, and by tests.
type MemoryProvider struct {
	Logics map[int]*Logic
	Views  map[int]*View

	// Unloaded counts the calls to Unload per kind.
	Unloaded map[Kind]int
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		Logics:   map[int]*Logic{},
		Views:    map[int]*View{},
		Unloaded: map[Kind]int{},
	}
}

// AddLogic registers the bytecode and messages of logic id.
func (m *MemoryProvider) AddLogic(id int, code []byte, messages ...string) {
	m.Logics[id] = &Logic{Code: code, Messages: messages}
}

// AddView registers view id.
func (m *MemoryProvider) AddView(id int, v *View) {
	m.Views[id] = v
}

func (m *MemoryProvider) LoadLogic(id int) (*Logic, error) {
	l, ok := m.Logics[id]
	if !ok {
		return nil, Missing(KindLogic, id)
	}
	return l, nil
}

func (m *MemoryProvider) LoadView(id int) (*View, error) {
	v, ok := m.Views[id]
	if !ok {
		return nil, Missing(KindView, id)
	}
	return v, nil
}

func (m *MemoryProvider) Unload(kind Kind, id int) {
	m.Unloaded[kind]++
}

// SolidView returns a view with one loop holding a single cel of the
// given size filled with colour.
func SolidView(w, h int, colour uint8) *View {
	return &View{Loops: []*Loop{{Cels: []*Cel{SolidCel(w, h, colour)}}}}
}

// SolidCel returns a cel of the given size filled with colour. The
// transparent colour is chosen so it never matches colour.
func SolidCel(w, h int, colour uint8) *Cel {
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = colour
	}
	return &Cel{Width: w, Height: h, Transparent: (colour + 1) & 0x0F, Pixels: pix}
}
