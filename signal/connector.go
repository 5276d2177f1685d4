package signal

// Connector owns a set of connections and drops them as one group.
// The zero value is ready to use.
type Connector struct {
	conns []Disconnecter
}

// Connect subscribes fn to s and records the connection in c.
func Connect[T any](c *Connector, s *Signal[T], fn func(T)) *Listener[T] {
	l := s.Connect(fn)
	c.conns = append(c.conns, l)
	return l
}

// Add records an existing connection.
func (c *Connector) Add(d Disconnecter) {
	c.conns = append(c.conns, d)
}

// Invalidate disconnects every recorded connection. Once it returns, none of
// the connected handlers will run again, even if a source emits from inside
// another handler.
func (c *Connector) Invalidate() {
	conns := c.conns
	c.conns = nil
	for _, d := range conns {
		d.Disconnect()
	}
}

// Len returns the number of recorded connections.
func (c *Connector) Len() int {
	return len(c.conns)
}
