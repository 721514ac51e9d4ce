package domain

// State is the full persisted record: four order-preserving collections
// serialized as a single JSON blob under one fixed storage key.
type State struct {
	Customers   []Customer   `json:"customers"`
	Technicians []Technician `json:"technicians"`
	Devices     []Device     `json:"devices"`
	Tickets     []Ticket     `json:"tickets"`
}

// Normalize replaces nil collections with empty slices so a decoded blob
// with missing keys behaves like an empty store.
func (s *State) Normalize() {
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Technicians == nil {
		s.Technicians = []Technician{}
	}
	if s.Devices == nil {
		s.Devices = []Device{}
	}
	if s.Tickets == nil {
		s.Tickets = []Ticket{}
	}
}

// Clone returns an independent copy of the state. Mutations always
// replace ticket cost pointers rather than writing through them, so a
// shallow copy of each slice is sufficient.
func (s State) Clone() State {
	out := State{
		Customers:   make([]Customer, len(s.Customers)),
		Technicians: make([]Technician, len(s.Technicians)),
		Devices:     make([]Device, len(s.Devices)),
		Tickets:     make([]Ticket, len(s.Tickets)),
	}
	copy(out.Customers, s.Customers)
	copy(out.Technicians, s.Technicians)
	copy(out.Devices, s.Devices)
	copy(out.Tickets, s.Tickets)
	return out
}

// FindCustomer returns the customer with the given id, if present.
func (s State) FindCustomer(id string) (Customer, bool) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// FindTechnician returns the technician with the given id, if present.
func (s State) FindTechnician(id string) (Technician, bool) {
	for _, t := range s.Technicians {
		if t.ID == id {
			return t, true
		}
	}
	return Technician{}, false
}

// FindDevice returns the device with the given id, if present.
func (s State) FindDevice(id string) (Device, bool) {
	for _, d := range s.Devices {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}

// FindTicket returns the ticket with the given id, if present.
func (s State) FindTicket(id string) (Ticket, bool) {
	for _, t := range s.Tickets {
		if t.ID == id {
			return t, true
		}
	}
	return Ticket{}, false
}
