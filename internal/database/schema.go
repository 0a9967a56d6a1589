package database

import "fmt"

// InitStatements returns the SQL statements that set up the relational store:
// tables, the ticket pricing trigger, the purchases view and the role grants.
// They are idempotent and must run through the admin handle.
func InitStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE
				CHECK (email ~ '^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$'),
			details TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS trains (
			train_id BIGSERIAL PRIMARY KEY,
			train_name TEXT NOT NULL UNIQUE,
			capacity INT NOT NULL CHECK (capacity > 0),
			status TEXT NOT NULL
				CHECK (status IN ('OPERATIONAL', 'DELAYED', 'BROKEN'))
		)`,

		`CREATE TABLE IF NOT EXISTS stations (
			station_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			details TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS connections (
			connection_id BIGSERIAL PRIMARY KEY,
			starting_station_id BIGINT NOT NULL REFERENCES stations (station_id),
			ending_station_id BIGINT NOT NULL REFERENCES stations (station_id),
			travel_time INT NOT NULL CHECK (travel_time BETWEEN 1 AND 60),
			UNIQUE (starting_station_id, ending_station_id)
		)`,

		`CREATE TABLE IF NOT EXISTS schedules (
			schedule_id BIGSERIAL PRIMARY KEY,
			train_id BIGINT NOT NULL REFERENCES trains (train_id) ON DELETE CASCADE,
			starting_station_id BIGINT NOT NULL REFERENCES stations (station_id),
			ending_station_id BIGINT NOT NULL REFERENCES stations (station_id),
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			valid_from DATE NOT NULL,
			valid_until DATE NOT NULL CHECK (valid_until >= valid_from)
		)`,

		`CREATE TABLE IF NOT EXISTS trips (
			trip_id BIGSERIAL PRIMARY KEY,
			schedule_id BIGINT NOT NULL REFERENCES schedules (schedule_id) ON DELETE CASCADE,
			train_id BIGINT NOT NULL REFERENCES trains (train_id) ON DELETE CASCADE,
			starting_station_id BIGINT NOT NULL REFERENCES stations (station_id),
			ending_station_id BIGINT NOT NULL REFERENCES stations (station_id),
			trip_date DATE NOT NULL,
			start_time TIME NOT NULL,
			end_time TIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS tickets (
			ticket_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
			trip_id BIGINT NOT NULL REFERENCES trips (trip_id) ON DELETE CASCADE,
			booking_time TIMESTAMPTZ NOT NULL DEFAULT now(),
			reserved_seat BOOLEAN NOT NULL DEFAULT FALSE,
			price INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS reservations (
			reservation_id BIGSERIAL PRIMARY KEY,
			ticket_id BIGINT NOT NULL UNIQUE REFERENCES tickets (ticket_id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS graph_outbox (
			trip_id BIGINT PRIMARY KEY REFERENCES trips (trip_id) ON DELETE CASCADE,
			from_station TEXT NOT NULL,
			to_station TEXT NOT NULL,
			train_name TEXT NOT NULL,
			departure TIMESTAMP NOT NULL,
			arrival TIMESTAMP NOT NULL,
			travel_time INT NOT NULL,
			flushed BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		// Ticket price is derived from the leg duration and never supplied by
		// the caller: floor(minutes / 2) + 2.
		`CREATE OR REPLACE FUNCTION set_ticket_price() RETURNS trigger AS $$
		BEGIN
			SELECT floor(extract(epoch FROM (t.end_time - t.start_time)) / 60 / 2) + 2
			INTO NEW.price
			FROM trips t
			WHERE t.trip_id = NEW.trip_id;
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`,

		`DROP TRIGGER IF EXISTS tickets_price_trg ON tickets`,

		`CREATE TRIGGER tickets_price_trg
			BEFORE INSERT ON tickets
			FOR EACH ROW EXECUTE FUNCTION set_ticket_price()`,

		`CREATE OR REPLACE VIEW purchases AS
			SELECT tk.ticket_id,
				u.email,
				tr.train_name,
				s1.name AS starting_station,
				s2.name AS ending_station,
				t.trip_date,
				t.start_time,
				t.end_time,
				tk.reserved_seat,
				tk.price,
				tk.booking_time
			FROM tickets tk
			JOIN users u ON u.user_id = tk.user_id
			JOIN trips t ON t.trip_id = tk.trip_id
			JOIN trains tr ON tr.train_id = t.train_id
			JOIN stations s1 ON s1.station_id = t.starting_station_id
			JOIN stations s2 ON s2.station_id = t.ending_station_id`,

		// Privilege split: the admin role owns the schema, the base role can
		// read and buy, anonymous can only browse the network.
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = 'traits_admin') THEN
				CREATE ROLE traits_admin;
			END IF;
			IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = 'traits_user') THEN
				CREATE ROLE traits_user;
			END IF;
			IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = 'traits_anonymous') THEN
				CREATE ROLE traits_anonymous;
			END IF;
		END $$`,

		`GRANT ALL ON ALL TABLES IN SCHEMA public TO traits_admin`,
		`GRANT ALL ON ALL SEQUENCES IN SCHEMA public TO traits_admin`,
		`GRANT SELECT ON users, trains, stations, connections, schedules, trips,
			tickets, reservations, purchases TO traits_user`,
		`GRANT INSERT ON tickets, reservations TO traits_user`,
		`GRANT USAGE ON SEQUENCE tickets_ticket_id_seq, reservations_reservation_id_seq TO traits_user`,
		`GRANT SELECT ON trains, stations, trips TO traits_anonymous`,
	}
}

// Setup executes the initialization statements on the given handle.
func Setup(db DB) error {
	for _, stmt := range InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	return nil
}
