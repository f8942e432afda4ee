package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostMemoryUsedPercent is read on every scrape
var HostMemoryUsedPercent = promauto.NewGaugeFunc(
	prometheus.GaugeOpts{
		Name: "wordquiz_host_memory_used_percent",
		Help: "Percentage of host memory in use",
	},
	MemoryUsedPercent,
)

// MemoryUsedPercent returns the host memory usage as a percentage
func MemoryUsedPercent() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("Error getting memory usage: %v", err)
		return 0
	}
	return vm.UsedPercent
}
