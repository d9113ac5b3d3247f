package sim

// testPacket builds a valid packet with a fixed size for discipline tests.
func testPacket(id int, arrival float64, priority int, service float64) *Packet {
	return &Packet{
		ID:          id,
		ArrivalTime: arrival,
		Size:        1000,
		ServiceTime: service,
		Priority:    priority,
	}
}

// admitAll offers packets to a discipline in order, ignoring outcomes.
func admitAll(d Discipline, packets ...*Packet) {
	for _, p := range packets {
		d.Admit(p)
	}
}

// drainIDs selects packets until the discipline is empty, returning ids in
// service order.
func drainIDs(d Discipline) []int {
	var ids []int
	for !d.IsEmpty() {
		p := d.SelectNext()
		if p == nil {
			break
		}
		ids = append(ids, p.ID)
		d.OnServiceComplete(p)
	}
	return ids
}
