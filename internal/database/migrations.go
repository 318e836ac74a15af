package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createPackagesTable,
		createGuidesTable,
		createBookingsTable,
		createOffersTable,
		createBlockedDatesTable,
		createPayoutsTable,
		createNotificationsTable,
		createContactsTable,
		createReviewsTable,
		createBookingsTravelDateIndex,
		createNotificationsGuideIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    uid VARCHAR(128) PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    name VARCHAR(200) NOT NULL DEFAULT '',
    role VARCHAR(20) NOT NULL DEFAULT 'customer',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('customer', 'guide', 'admin'))
);`

const createPackagesTable = `
CREATE TABLE IF NOT EXISTS packages (
    id SERIAL PRIMARY KEY,
    title VARCHAR(300) NOT NULL,
    location VARCHAR(200) NOT NULL,
    price DECIMAL(12,2) NOT NULL,
    duration VARCHAR(100) NOT NULL DEFAULT '',
    rating DECIMAL(3,1) NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    included TEXT[] NOT NULL DEFAULT '{}',
    transport TEXT NOT NULL DEFAULT '',
    food TEXT NOT NULL DEFAULT '',
    gallery TEXT[] NOT NULL DEFAULT '{}',
    hotels JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createGuidesTable = `
CREATE TABLE IF NOT EXISTS guides (
    id SERIAL PRIMARY KEY,
    uid VARCHAR(128) UNIQUE,
    name VARCHAR(200) NOT NULL,
    role VARCHAR(100) NOT NULL DEFAULT 'Tour Guide',
    location VARCHAR(200) NOT NULL DEFAULT '',
    languages TEXT[] NOT NULL DEFAULT '{}',
    experience VARCHAR(100) NOT NULL DEFAULT '',
    rating DECIMAL(3,1) NOT NULL DEFAULT 0,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('pending', 'approved', 'rejected'))
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id SERIAL PRIMARY KEY,
    code VARCHAR(40) UNIQUE NOT NULL,
    user_id VARCHAR(128) REFERENCES users(uid),
    package_id INTEGER NOT NULL REFERENCES packages(id),
    package_title VARCHAR(300) NOT NULL,
    package_image TEXT NOT NULL DEFAULT '',
    package_location VARCHAR(200) NOT NULL DEFAULT '',
    travel_date DATE NOT NULL,
    adults INTEGER NOT NULL CHECK (adults >= 1),
    children INTEGER NOT NULL DEFAULT 0 CHECK (children >= 0),
    customer_name VARCHAR(200) NOT NULL,
    customer_email VARCHAR(255) NOT NULL,
    customer_phone VARCHAR(50) NOT NULL,
    guide_id INTEGER REFERENCES guides(id),
    guide_name VARCHAR(200),
    guide_role VARCHAR(100),
    hotel_name VARCHAR(200),
    hotel_type VARCHAR(100),
    special_requests TEXT NOT NULL DEFAULT '',
    payment_method VARCHAR(50) NOT NULL,
    total_amount DECIMAL(12,2) NOT NULL,
    offer_id INTEGER,
    offer_title VARCHAR(300),
    offer_code VARCHAR(50),
    offer_discount_type VARCHAR(20),
    offer_discount_value DECIMAL(12,2),
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
    CHECK (payment_status IN ('pending', 'paid'))
);`

const createOffersTable = `
CREATE TABLE IF NOT EXISTS offers (
    id SERIAL PRIMARY KEY,
    title VARCHAR(300) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    discount_type VARCHAR(20) NOT NULL,
    discount_value DECIMAL(12,2) NOT NULL,
    code VARCHAR(50),
    valid_until DATE,
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (discount_type IN ('percentage', 'amount')),
    CHECK (status IN ('active', 'inactive'))
);`

const createBlockedDatesTable = `
CREATE TABLE IF NOT EXISTS blocked_dates (
    id SERIAL PRIMARY KEY,
    guide_id INTEGER NOT NULL REFERENCES guides(id) ON DELETE CASCADE,
    date DATE NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(guide_id, date)
);`

const createPayoutsTable = `
CREATE TABLE IF NOT EXISTS payouts (
    id SERIAL PRIMARY KEY,
    booking_code VARCHAR(40) NOT NULL,
    booking_doc_id INTEGER NOT NULL UNIQUE REFERENCES bookings(id),
    guide_id INTEGER NOT NULL REFERENCES guides(id),
    guide_name VARCHAR(200) NOT NULL,
    package_title VARCHAR(300) NOT NULL,
    amount DECIMAL(12,2) NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    payout_date TIMESTAMP NOT NULL DEFAULT NOW(),
    status VARCHAR(20) NOT NULL DEFAULT 'completed'
);`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    id SERIAL PRIMARY KEY,
    guide_id INTEGER NOT NULL REFERENCES guides(id) ON DELETE CASCADE,
    title VARCHAR(300) NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    type VARCHAR(50) NOT NULL DEFAULT 'new_booking',
    booking_code VARCHAR(40) NOT NULL DEFAULT '',
    read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createContactsTable = `
CREATE TABLE IF NOT EXISTS contacts (
    id SERIAL PRIMARY KEY,
    name VARCHAR(200) NOT NULL,
    email VARCHAR(255) NOT NULL,
    subject VARCHAR(300) NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createReviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
    id SERIAL PRIMARY KEY,
    package_id INTEGER NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
    user_id VARCHAR(128) NOT NULL REFERENCES users(uid),
    user_name VARCHAR(200) NOT NULL DEFAULT '',
    rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    comment TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createBookingsTravelDateIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_travel_date ON bookings(travel_date) WHERE status != 'cancelled';`

const createNotificationsGuideIndex = `
CREATE INDEX IF NOT EXISTS idx_notifications_guide ON notifications(guide_id, created_at DESC);`
