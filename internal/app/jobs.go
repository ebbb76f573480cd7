package app

import (
	"context"
	"time"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/kanditextile/kandipos/internal/ledger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	sched := cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = sched.AddFunc("5 0 * * *", func() {
		a.SchedDailySummary()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	sched.Start()
	a.jobsStop = func() { sched.Stop() }
}

// SchedClearExpireData trims old operator log rows.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	idays := a.ConfigMgr().GetInt("pos", "OprLogRetentionDays")
	if idays == 0 {
		idays = 365
	}
	a.gormDB.
		Where("opt_time < ? ", time.Now().
			Add(-time.Hour*24*time.Duration(idays))).Delete(domain.SysOprLog{})
}

// SchedDailySummary logs the previous day's ledger totals shortly after
// midnight, so the figures land in the log file even when nobody opens
// the report page.
func (a *Application) SchedDailySummary() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	day := time.Now().AddDate(0, 0, -1).Format(domain.DayLayout)
	repo := ledger.NewGormSaleRepository(a.gormDB)
	totals, err := repo.SumByDay(context.Background(), day)
	if err != nil {
		zap.L().Error("daily summary query failed", zap.Error(err))
		return
	}
	zap.L().Info("daily sales summary",
		zap.String("day", day),
		zap.Float64("total_sales", totals.TotalSales),
		zap.Float64("total_cash", totals.TotalCash),
		zap.Float64("total_debts", totals.TotalDebts))
}
