//go:build windows

package service

import (
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// windowsSCManager wraps the real Windows Service Control Manager.
type windowsSCManager struct {
	mgr *mgr.Mgr
}

// windowsService wraps a real Windows service handle.
type windowsService struct {
	svc *mgr.Service
}

// OpenSCManager opens a connection to the Windows Service Control
// Manager. The caller must call Close() when done.
func OpenSCManager() (SCManagerInterface, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, fmt.Errorf("connecting to service control manager: %w", err)
	}
	return &windowsSCManager{mgr: m}, nil
}

func (m *windowsSCManager) OpenService(name string) (ServiceInterface, error) {
	s, err := m.mgr.OpenService(name)
	if err != nil {
		return nil, fmt.Errorf("opening service %q: %w", name, ErrServiceNotFound)
	}
	return &windowsService{svc: s}, nil
}

// CreateService creates a new service. The SCM CreateService API is
// atomic; a failed call leaves no partial state behind.
func (m *windowsSCManager) CreateService(name, exePath string, config ServiceConfig) (ServiceInterface, error) {
	existing, err := m.mgr.OpenService(name)
	if err == nil {
		existing.Close()
		return nil, ErrServiceExists
	}

	svcConfig := mgr.Config{
		DisplayName:  config.DisplayName,
		Description:  config.Description,
		StartType:    config.StartType,
		ServiceType:  windows.SERVICE_WIN32_OWN_PROCESS,
		ErrorControl: windows.SERVICE_ERROR_NORMAL,
	}

	s, err := m.mgr.CreateService(name, exePath, svcConfig)
	if err != nil {
		return nil, fmt.Errorf("creating service %q: %w", name, err)
	}

	return &windowsService{svc: s}, nil
}

func (m *windowsSCManager) Close() error {
	return m.mgr.Disconnect()
}

func (s *windowsService) Start() error {
	if err := s.svc.Start(); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	return nil
}

func (s *windowsService) Stop() error {
	_, err := s.svc.Control(svc.Stop)
	if err != nil {
		return fmt.Errorf("stopping service: %w", err)
	}
	return nil
}

func (s *windowsService) Delete() error {
	if err := s.svc.Delete(); err != nil {
		return fmt.Errorf("deleting service: %w", err)
	}
	return nil
}

func (s *windowsService) Status() (ServiceStatus, error) {
	status, err := s.svc.Query()
	if err != nil {
		return 0, fmt.Errorf("querying service status: %w", err)
	}
	return ServiceStatus(status.State), nil
}

func (s *windowsService) Close() error {
	return s.svc.Close()
}
