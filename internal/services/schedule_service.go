package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/models"
	"github.com/railtraits/traits-backend/pkg/timeutil"
)

// ScheduleService admits schedule templates and materialises them into daily
// trip legs. Admission enforces the structural and temporal invariants;
// materialisation writes the schedule, its trips and their graph-outbox rows
// in one relational transaction, then flushes the edges to the graph store.
type ScheduleService struct {
	db        database.DB
	trains    *database.TrainRepository
	stations  *database.StationRepository
	segments  *database.SegmentRepository
	schedules *database.ScheduleRepository
	trips     *database.TripRepository
	outbox    *database.OutboxRepository
	graph     *graph.Client
	logger    *logrus.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	db database.DB,
	trains *database.TrainRepository,
	stations *database.StationRepository,
	segments *database.SegmentRepository,
	schedules *database.ScheduleRepository,
	trips *database.TripRepository,
	outbox *database.OutboxRepository,
	graphClient *graph.Client,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		db:        db,
		trains:    trains,
		stations:  stations,
		segments:  segments,
		schedules: schedules,
		trips:     trips,
		outbox:    outbox,
		graph:     graphClient,
		logger:    logger,
	}
}

// AddSchedule validates admissibility of a schedule template and, when it
// holds, materialises one trip leg per consecutive stop pair per day of the
// validity window.
func (s *ScheduleService) AddSchedule(
	ctx context.Context,
	trainKey models.Key,
	startHours, startMinutes int,
	stops []models.Stop,
	validFrom, validUntil time.Time,
) (*models.Schedule, error) {
	train, err := s.trains.GetByName(trainKey.String())
	if err != nil {
		if database.IsNoRows(err) {
			return nil, invalidArgf("train %s does not exist", trainKey)
		}
		return nil, err
	}

	if startHours < 0 || startHours > 23 {
		return nil, invalidArgf("starting hours must be between 0 and 23")
	}
	if startMinutes < 0 || startMinutes > 59 {
		return nil, invalidArgf("starting minutes must be between 0 and 59")
	}
	if len(stops) < 2 {
		return nil, invalidArgf("a schedule needs at least two stops")
	}

	validFrom = timeutil.Truncate(validFrom)
	validUntil = timeutil.Truncate(validUntil)
	if validUntil.Before(validFrom) {
		return nil, invalidArgf("valid_until must not precede valid_from")
	}

	stationIDs := make([]int64, len(stops))
	stationNames := make([]string, len(stops))
	waits := make([]int, len(stops))
	for i, stop := range stops {
		station, err := s.stations.GetByName(stop.Station.String())
		if err != nil {
			if database.IsNoRows(err) {
				return nil, invalidArgf("station %s does not exist", stop.Station)
			}
			return nil, err
		}
		stationIDs[i] = station.ID
		stationNames[i] = station.Name
		waits[i] = stop.WaitingTime
	}

	// Travel times come from the stored segments, never from the caller.
	travels := make([]int, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		minutes, err := s.segments.TravelTime(stationIDs[i], stationIDs[i+1])
		if err != nil {
			if database.IsNoRows(err) {
				return nil, invalidArgf("stations %s and %s are not directly connected",
					stops[i].Station, stops[i+1].Station)
			}
			return nil, err
		}
		travels[i] = minutes
	}

	if waits[len(waits)-1] < models.MinTerminusDwell {
		return nil, invalidArgf("waiting time at the last stop must be at least %d minutes",
			models.MinTerminusDwell)
	}

	start := timeutil.ClockOf(startHours, startMinutes)
	legs, end := planLegs(start, waits, travels)
	if end.CrossesMidnight() {
		return nil, invalidArgf("schedule must complete before midnight of its start day")
	}

	if err := s.checkAgainstExisting(train.ID, start, end, validFrom, validUntil); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		TrainID:           train.ID,
		StartingStationID: stationIDs[0],
		EndingStationID:   stationIDs[len(stationIDs)-1],
		StartTime:         start.String(),
		EndTime:           end.String(),
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
	}

	edges, tripIDs, err := s.materialise(schedule, train.Name, stationIDs, stationNames, legs)
	if err != nil {
		return nil, classifyStoreError(err, "")
	}

	// Inline flush so searches see the edges right away; the outbox worker
	// replays any legs this misses.
	if err := s.graph.UpsertTripEdges(ctx, edges); err != nil {
		s.logger.WithError(err).WithField("schedule_id", schedule.ID).
			Error("trips committed but graph edge flush failed; outbox will retry")
	} else if err := s.outbox.MarkFlushed(tripIDs); err != nil {
		s.logger.WithError(err).Error("failed to mark flushed edges")
	}

	s.logger.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"train":       train.Name,
		"trips":       len(tripIDs),
	}).Info("Schedule admitted")
	return schedule, nil
}

// checkAgainstExisting enforces the same-day non-overlap rule and the
// six-hour gap across midnight against every schedule of the train whose
// validity window comes near the new one.
func (s *ScheduleService) checkAgainstExisting(trainID int64, start, end timeutil.Clock, validFrom, validUntil time.Time) error {
	existing, err := s.schedules.ListByTrainIntersecting(
		trainID, validFrom.AddDate(0, 0, -1), validUntil.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	for _, other := range existing {
		otherStart, err := timeutil.ParseClock(other.StartTime)
		if err != nil {
			return err
		}
		otherEnd, err := timeutil.ParseClock(other.EndTime)
		if err != nil {
			return err
		}

		if windowsIntersect(other.ValidFrom, other.ValidUntil, validFrom, validUntil) &&
			intervalsOverlap(start, end, otherStart, otherEnd) {
			return invalidArgf("train already runs between %s and %s on shared dates",
				other.StartTime, other.EndTime)
		}

		// The other schedule runs on some day D, the new one on D+1.
		if windowsIntersect(other.ValidFrom, other.ValidUntil,
			validFrom.AddDate(0, 0, -1), validUntil.AddDate(0, 0, -1)) &&
			timeutil.GapAcrossMidnight(otherEnd, start) < models.MinScheduleGapMinutes {
			return invalidArgf("train needs at least 6 hours between %s and the next day's %s start",
				other.EndTime, start)
		}

		// The new schedule runs on some day D, the other one on D+1.
		if windowsIntersect(other.ValidFrom, other.ValidUntil,
			validFrom.AddDate(0, 0, 1), validUntil.AddDate(0, 0, 1)) &&
			timeutil.GapAcrossMidnight(end, otherStart) < models.MinScheduleGapMinutes {
			return invalidArgf("train needs at least 6 hours between %s and the next day's %s start",
				end, other.StartTime)
		}
	}
	return nil
}

// materialise writes the schedule row, one trip per leg per day, and the
// matching graph-outbox rows, all in one transaction.
func (s *ScheduleService) materialise(
	schedule *models.Schedule,
	trainName string,
	stationIDs []int64,
	stationNames []string,
	legs []plannedLeg,
) ([]models.TripEdge, []int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := s.schedules.InsertTx(tx, schedule); err != nil {
		return nil, nil, err
	}

	var edges []models.TripEdge
	var tripIDs []int64
	for _, day := range timeutil.DateRange(schedule.ValidFrom, schedule.ValidUntil) {
		for i, leg := range legs {
			trip := &models.Trip{
				ScheduleID:        schedule.ID,
				TrainID:           schedule.TrainID,
				StartingStationID: stationIDs[i],
				EndingStationID:   stationIDs[i+1],
				Date:              day,
				StartTime:         leg.Start.String(),
				EndTime:           leg.End.String(),
			}
			if err := s.trips.InsertTx(tx, trip); err != nil {
				return nil, nil, err
			}

			edge := models.TripEdge{
				TripID:      trip.ID,
				FromStation: stationNames[i],
				ToStation:   stationNames[i+1],
				TrainName:   trainName,
				Departure:   leg.Start.At(day),
				Arrival:     leg.End.At(day),
				TravelTime:  leg.TravelTime,
			}
			if err := s.outbox.InsertTx(tx, edge); err != nil {
				return nil, nil, err
			}

			edges = append(edges, edge)
			tripIDs = append(tripIDs, trip.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return edges, tripIDs, nil
}
