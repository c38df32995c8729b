package migrate

// AssociatePorts привязывает к каждому порту адреса его интерфейса.
// Интерфейс без адресов в кэше просто не получает связей.
func AssociatePorts(env *Env) int {
	env.fill()

	linked := 0
	for _, ifaceID := range env.Cache.PortInterfaces() {
		port, _ := env.Cache.Port(ifaceID)
		have := make(map[string]struct{}, len(port.IPAddresses))
		for _, ip := range port.IPAddresses {
			have[ip.ID] = struct{}{}
		}
		for _, ip := range env.Cache.Addresses(ifaceID) {
			if _, ok := have[ip.ID]; ok {
				continue
			}
			have[ip.ID] = struct{}{}
			port.IPAddresses = append(port.IPAddresses, ip)
			linked++
		}
	}
	env.Stats.Associations += linked
	return linked
}
