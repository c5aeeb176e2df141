package events

import (
	"time"
)

// Event type constants
const (
	TypeSimulationStarted   = "simulation.started"
	TypeStepCompleted       = "step.completed"
	TypeSimulationConverged = "simulation.converged"
)

// SimulationStartedEvent is published once the initial world exists
type SimulationStartedEvent struct {
	BaseEvent
	GridSize  int     `json:"grid_size"`
	CountA    int     `json:"count_a"`
	CountB    int     `json:"count_b"`
	Empty     int     `json:"empty"`
	Threshold float64 `json:"threshold"`
}

// NewSimulationStartedEvent creates a new SimulationStartedEvent
func NewSimulationStartedEvent(runID string, gridSize, countA, countB, empty int, threshold float64) *SimulationStartedEvent {
	return &SimulationStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeSimulationStarted,
			Time:      time.Now(),
			Run:       runID,
		},
		GridSize:  gridSize,
		CountA:    countA,
		CountB:    countB,
		Empty:     empty,
		Threshold: threshold,
	}
}

// StepCompletedEvent is published after every advance of the world
type StepCompletedEvent struct {
	BaseEvent
	Step           int           `json:"step"`
	Relocations    int           `json:"relocations"`
	Unsatisfied    int           `json:"unsatisfied"`
	MeanSimilarity float64       `json:"mean_similarity"`
	ProcessTime    time.Duration `json:"process_time"`
}

// NewStepCompletedEvent creates a new StepCompletedEvent
func NewStepCompletedEvent(runID string, step, relocations, unsatisfied int, meanSimilarity float64, processTime time.Duration) *StepCompletedEvent {
	return &StepCompletedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeStepCompleted,
			Time:      time.Now(),
			Run:       runID,
		},
		Step:           step,
		Relocations:    relocations,
		Unsatisfied:    unsatisfied,
		MeanSimilarity: meanSimilarity,
		ProcessTime:    processTime,
	}
}

// SimulationConvergedEvent is published the first time no actor is unsatisfied
type SimulationConvergedEvent struct {
	BaseEvent
	Step           int     `json:"step"`
	MeanSimilarity float64 `json:"mean_similarity"`
}

// NewSimulationConvergedEvent creates a new SimulationConvergedEvent
func NewSimulationConvergedEvent(runID string, step int, meanSimilarity float64) *SimulationConvergedEvent {
	return &SimulationConvergedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeSimulationConverged,
			Time:      time.Now(),
			Run:       runID,
		},
		Step:           step,
		MeanSimilarity: meanSimilarity,
	}
}
