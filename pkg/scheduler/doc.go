// Package scheduler provides time-based task scheduling on top of an
// executor. Tasks run at an absolute time, after a delay, at a fixed
// interval, or on a cron schedule, and are submitted to the executor
// when due so they share its worker pool and saturation policy.
//
// Basic usage:
//
//	exec, _ := executor.New(2, 8, time.Minute, 64)
//	sched, _ := scheduler.New(exec)
//	sched.Start()
//	defer func() { <-sched.Stop() }()
//
//	sched.ScheduleAfter("warmup", executor.NewCallable(warm, nil), 5*time.Second)
//	sched.ScheduleRepeating("heartbeat", executor.NewCallable(beat, nil), 30*time.Second)
//	sched.ScheduleCron("nightly", "0 0 2 * * *", executor.NewCallable(compact, nil))
//
// Cron expressions use six fields with seconds, plus descriptors such as
// @hourly and @every 1h30m.
package scheduler
