package config

// CronJob maps a schedule to a job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds statically configured jobs. Packages can also self-register
// through cron.Register from init().
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
