//go:build windows

package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service management operations.
var (
	// ErrServiceExists is returned when installing a service that already exists.
	ErrServiceExists = errors.New("service already exists")

	// ErrServiceNotFound is returned when the service is not found.
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceAlreadyRunning is returned when starting a running service.
	ErrServiceAlreadyRunning = errors.New("service is already running")

	// ErrServiceNotRunning is returned when stopping a stopped service.
	ErrServiceNotRunning = errors.New("service is not running")
)

// Start type constants matching the Windows SERVICE_START_TYPE values.
const (
	// StartTypeAutomatic starts the service on system boot.
	StartTypeAutomatic uint32 = 2

	// StartTypeManual requires an explicit start.
	StartTypeManual uint32 = 3

	// StartTypeDisabled prevents the service from starting.
	StartTypeDisabled uint32 = 4
)

// ServiceStatus is the current state of a Windows service, matching
// the SERVICE_STATUS dwCurrentState values.
type ServiceStatus uint32

const (
	StatusStopped         ServiceStatus = 1
	StatusStartPending    ServiceStatus = 2
	StatusStopPending     ServiceStatus = 3
	StatusRunning         ServiceStatus = 4
	StatusContinuePending ServiceStatus = 5
	StatusPausePending    ServiceStatus = 6
	StatusPaused          ServiceStatus = 7
)

// String returns a human-readable representation of the service status.
func (s ServiceStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusStartPending:
		return "Start Pending"
	case StatusStopPending:
		return "Stop Pending"
	case StatusRunning:
		return "Running"
	case StatusContinuePending:
		return "Continue Pending"
	case StatusPausePending:
		return "Pause Pending"
	case StatusPaused:
		return "Paused"
	default:
		return fmt.Sprintf("Unknown (%d)", s)
	}
}

// ServiceConfig configures a service at creation time.
type ServiceConfig struct {
	// DisplayName is the name shown in the Services panel.
	DisplayName string

	// StartType determines when the service starts.
	StartType uint32

	// Description is an optional description of the service.
	Description string
}

// SCManagerInterface abstracts the Windows Service Control Manager so
// the manager can be tested without Windows API calls.
type SCManagerInterface interface {
	// OpenService opens an existing service by name.
	OpenService(name string) (ServiceInterface, error)

	// CreateService creates a new service.
	CreateService(name, exePath string, config ServiceConfig) (ServiceInterface, error)

	// Close releases the SCM handle.
	Close() error
}

// ServiceInterface abstracts a single Windows service handle.
type ServiceInterface interface {
	Start() error
	Stop() error
	Delete() error
	Status() (ServiceStatus, error)
	Close() error
}

// ServiceManager provides install, uninstall, start, stop and status
// operations for the nodoff daemon service.
type ServiceManager struct {
	scm SCManagerInterface
}

// NewServiceManager creates a service manager over the given SCM.
func NewServiceManager(scm SCManagerInterface) *ServiceManager {
	return &ServiceManager{scm: scm}
}

// Install creates and registers the daemon service.
// Returns ErrServiceExists if the service already exists.
func (m *ServiceManager) Install(serviceName, displayName, exePath string, startType uint32) error {
	config := ServiceConfig{
		DisplayName: displayName,
		StartType:   startType,
	}

	svc, err := m.scm.CreateService(serviceName, exePath, config)
	if err != nil {
		return err
	}

	return svc.Close()
}

// Uninstall removes the daemon service, stopping it first if running.
// Returns ErrServiceNotFound if the service does not exist.
func (m *ServiceManager) Uninstall(serviceName string) error {
	svc, err := m.scm.OpenService(serviceName)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := m.stopIfRunning(svc); err != nil {
		return err
	}

	return svc.Delete()
}

func (m *ServiceManager) stopIfRunning(svc ServiceInterface) error {
	status, err := svc.Status()
	if err != nil {
		return err
	}

	if status == StatusRunning {
		return svc.Stop()
	}

	return nil
}

// Start starts the daemon service.
// Returns ErrServiceNotFound if the service does not exist and
// ErrServiceAlreadyRunning if it is already running.
func (m *ServiceManager) Start(serviceName string) error {
	svc, err := m.scm.OpenService(serviceName)
	if err != nil {
		return err
	}
	defer svc.Close()

	status, err := svc.Status()
	if err != nil {
		return err
	}

	if status == StatusRunning {
		return ErrServiceAlreadyRunning
	}

	return svc.Start()
}

// Stop stops the daemon service.
// Returns ErrServiceNotFound if the service does not exist and
// ErrServiceNotRunning if it is already stopped.
func (m *ServiceManager) Stop(serviceName string) error {
	svc, err := m.scm.OpenService(serviceName)
	if err != nil {
		return err
	}
	defer svc.Close()

	status, err := svc.Status()
	if err != nil {
		return err
	}

	if status == StatusStopped {
		return ErrServiceNotRunning
	}

	return svc.Stop()
}

// Status returns the current status of the daemon service.
// Returns ErrServiceNotFound if the service does not exist.
func (m *ServiceManager) Status(serviceName string) (ServiceStatus, error) {
	svc, err := m.scm.OpenService(serviceName)
	if err != nil {
		return 0, err
	}
	defer svc.Close()

	return svc.Status()
}
