package app

import "context"

type ComputeScheduleUseCase interface {
	Compute(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}

type RescheduleUseCase interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*RescheduleResponse, error)
}
