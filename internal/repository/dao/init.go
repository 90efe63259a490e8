package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Team{},
		&Event{},
		&Round{},
		&Registration{},
		&CheckIn{},
		&RoundResult{},
		&Coupon{},
		&CouponRedemption{},
		&Payment{},
		&RefreshToken{},
	)
}
