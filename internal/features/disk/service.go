package disk

import (
	"fmt"

	"taskhive-backend/internal/config"

	"github.com/shirou/gopsutil/v4/disk"
)

type DiskUsage struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"totalBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedBytes   uint64  `json:"usedBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type DiskService struct{}

// GetDataDirUsage reports disk usage of the volume holding the data
// folder.
func (s *DiskService) GetDataDirUsage() (*DiskUsage, error) {
	path := config.GetEnv().DataFolder
	if path == "" {
		path = "/"
	}

	usage, err := disk.Usage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage for %s: %w", path, err)
	}

	return &DiskUsage{
		Path:        usage.Path,
		TotalBytes:  usage.Total,
		FreeBytes:   usage.Free,
		UsedBytes:   usage.Used,
		UsedPercent: usage.UsedPercent,
	}, nil
}
