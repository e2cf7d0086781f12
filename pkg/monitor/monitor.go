// pkg/monitor/monitor.go
package monitor

import (
	"sync"
	"time"
)

// HealthStatus 组件健康状态
type HealthStatus struct {
	Component   string    `json:"component"`
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Message     string    `json:"message,omitempty"`
}

// CheckFunc 组件探测函数，返回错误即视为不健康
type CheckFunc func() error

// Monitor 组件健康登记表，API 的 /ready 和调度器的周期巡检共用
type Monitor struct {
	components map[string]*HealthStatus
	checks     map[string]CheckFunc
	mutex      sync.RWMutex
}

// NewMonitor 创建监控登记表
func NewMonitor() *Monitor {
	return &Monitor{
		components: make(map[string]*HealthStatus),
		checks:     make(map[string]CheckFunc),
	}
}

// RegisterComponent 注册组件及其探测函数
func (m *Monitor) RegisterComponent(component string, check CheckFunc) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.components[component] = &HealthStatus{
		Component:   component,
		Status:      "unknown",
		LastChecked: time.Now(),
	}
	m.checks[component] = check
}

// CheckAll 对全部注册组件跑一次探测
func (m *Monitor) CheckAll() {
	m.mutex.RLock()
	names := make([]string, 0, len(m.checks))
	for name := range m.checks {
		names = append(names, name)
	}
	m.mutex.RUnlock()

	for _, name := range names {
		m.checkOne(name)
	}
}

func (m *Monitor) checkOne(component string) {
	m.mutex.RLock()
	check := m.checks[component]
	m.mutex.RUnlock()
	if check == nil {
		return
	}

	status, message := "healthy", ""
	if err := check(); err != nil {
		status, message = "unhealthy", err.Error()
	}
	m.updateStatus(component, status, message)
}

func (m *Monitor) updateStatus(component, status, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.components[component]; !exists {
		m.components[component] = &HealthStatus{Component: component}
	}

	m.components[component].Status = status
	m.components[component].LastChecked = time.Now()
	m.components[component].Message = message
}

// GetAllStatus 获取所有组件状态
func (m *Monitor) GetAllStatus() []*HealthStatus {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	statuses := make([]*HealthStatus, 0, len(m.components))
	for _, status := range m.components {
		statuses = append(statuses, status)
	}

	return statuses
}

// AllHealthy 全部组件是否健康
func (m *Monitor) AllHealthy() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, status := range m.components {
		if status.Status != "healthy" {
			return false
		}
	}
	return true
}
