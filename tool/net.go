package tool

import "net"

// rejectInterface filters interfaces that cannot carry a reachable LAN address.
func rejectInterface(iface *net.Interface) bool {
	if iface.Flags&net.FlagUp == 0 {
		return true
	}
	if iface.Flags&net.FlagLoopback != 0 {
		return true
	}
	if iface.Flags&net.FlagPointToPoint != 0 {
		return true // utun / tun / vpn
	}
	return false
}

// LocalAddresses returns the IPv4 addresses other LAN devices can reach,
// used to build intake link URLs when no public base URL is configured.
func LocalAddresses() []string {
	var result []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return result
	}
	for i := range ifaces {
		if rejectInterface(&ifaces[i]) {
			continue
		}
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipnet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}
			result = append(result, ip.String())
		}
	}
	return result
}
