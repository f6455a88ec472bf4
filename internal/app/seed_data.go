package app

import "github.com/parkhaus/parkhaus/internal/domain"

type sampleTenant struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
	phone     string
	role      domain.Role
}

// sampleTenants are the demo client accounts. The admin account comes
// from SeederConfig, not from this list.
var sampleTenants = []sampleTenant{
	{
		username:  "john.doe",
		email:     "john.doe@email.com",
		password:  "password123",
		firstName: "John",
		lastName:  "Doe",
		phone:     "(555) 234-5678",
		role:      domain.RoleClient,
	},
	{
		username:  "jane.smith",
		email:     "jane.smith@email.com",
		password:  "password123",
		firstName: "Jane",
		lastName:  "Smith",
		phone:     "(555) 345-6789",
		role:      domain.RoleClient,
	},
}

type sampleApartment struct {
	title       string
	description string
	address     string
	city        string
	state       string
	zipCode     string
	priceCents  int64
	bedrooms    int
	bathrooms   int
	squareFeet  int
	status      domain.ApartmentStatus
	owner       string // seeded username, empty for unowned
}

var sampleApartments = []sampleApartment{
	{
		title:       "Luxury Downtown Apartment",
		description: "Beautiful 2-bedroom apartment in the heart of downtown with stunning city views. Recently renovated with modern amenities.",
		address:     "123 Main Street",
		city:        "New York",
		state:       "NY",
		zipCode:     "10001",
		priceCents:  75000000,
		bedrooms:    2,
		bathrooms:   2,
		squareFeet:  1200,
		status:      domain.ApartmentAvailable,
		owner:       "john.doe",
	},
	{
		title:       "Cozy Suburban Home",
		description: "Charming 3-bedroom apartment in a quiet suburban neighborhood. Perfect for families with excellent schools nearby.",
		address:     "456 Oak Avenue",
		city:        "Los Angeles",
		state:       "CA",
		zipCode:     "90210",
		priceCents:  65000000,
		bedrooms:    3,
		bathrooms:   2,
		squareFeet:  1500,
		status:      domain.ApartmentAvailable,
		owner:       "john.doe",
	},
	{
		title:       "Modern City View Apartment",
		description: "Contemporary 1-bedroom apartment with floor-to-ceiling windows and panoramic city views. Ideal for young professionals.",
		address:     "789 Park Boulevard",
		city:        "Chicago",
		state:       "IL",
		zipCode:     "60601",
		priceCents:  45000000,
		bedrooms:    1,
		bathrooms:   1,
		squareFeet:  800,
		status:      domain.ApartmentAvailable,
		owner:       "jane.smith",
	},
	{
		title:       "Waterfront Luxury Apartment",
		description: "Exclusive 4-bedroom waterfront apartment with private balcony and marina access. Premium location with stunning ocean views.",
		address:     "321 Harbor Drive",
		city:        "Miami",
		state:       "FL",
		zipCode:     "33101",
		priceCents:  120000000,
		bedrooms:    4,
		bathrooms:   3,
		squareFeet:  2200,
		status:      domain.ApartmentUnderContract,
		owner:       "jane.smith",
	},
	{
		title:       "Historic District Apartment",
		description: "Charming 2-bedroom apartment in a historic building with original architectural details. Located in a vibrant neighborhood.",
		address:     "654 Heritage Lane",
		city:        "Boston",
		state:       "MA",
		zipCode:     "02101",
		priceCents:  55000000,
		bedrooms:    2,
		bathrooms:   1,
		squareFeet:  1100,
		status:      domain.ApartmentAvailable,
		owner:       "john.doe",
	},
}

type sampleParkingSpace struct {
	spaceNumber      string
	location         string
	monthlyFeeCents  int64
	typ              domain.ParkingType
	status           domain.ParkingStatus
	covered          bool
	electricCharging bool
	maxVehicleLength float64
	maxVehicleWidth  float64
	notes            string
	tenant           string // seeded username, empty for unassigned
}

var sampleParkingSpaces = []sampleParkingSpace{
	{
		spaceNumber:      "P-001",
		location:         "Building A, Level 1",
		monthlyFeeCents:  5000,
		typ:              domain.ParkingStandard,
		status:           domain.ParkingAvailable,
		maxVehicleLength: 18.0,
		maxVehicleWidth:  8.0,
		notes:            "Standard parking space near main entrance",
	},
	{
		spaceNumber:      "P-002",
		location:         "Building A, Level 1",
		monthlyFeeCents:  6000,
		typ:              domain.ParkingLarge,
		status:           domain.ParkingOccupied,
		covered:          true,
		maxVehicleLength: 22.0,
		maxVehicleWidth:  9.0,
		notes:            "Covered large parking space",
		tenant:           "john.doe",
	},
	{
		spaceNumber:      "P-003",
		location:         "Building A, Level 2",
		monthlyFeeCents:  7500,
		typ:              domain.ParkingElectric,
		status:           domain.ParkingOccupied,
		covered:          true,
		electricCharging: true,
		maxVehicleLength: 18.0,
		maxVehicleWidth:  8.0,
		notes:            "Electric vehicle charging station",
		tenant:           "jane.smith",
	},
	{
		spaceNumber:      "P-004",
		location:         "Building B, Level 1",
		monthlyFeeCents:  4000,
		typ:              domain.ParkingCompact,
		status:           domain.ParkingAvailable,
		maxVehicleLength: 15.0,
		maxVehicleWidth:  7.0,
		notes:            "Compact parking space for small vehicles",
	},
	{
		spaceNumber:      "P-005",
		location:         "Building B, Level 1",
		monthlyFeeCents:  4500,
		typ:              domain.ParkingHandicap,
		status:           domain.ParkingAvailable,
		maxVehicleLength: 20.0,
		maxVehicleWidth:  9.0,
		notes:            "Handicap accessible parking space",
	},
	{
		spaceNumber:      "P-006",
		location:         "Building C, Level 1",
		monthlyFeeCents:  3000,
		typ:              domain.ParkingMotorcycle,
		status:           domain.ParkingAvailable,
		maxVehicleLength: 8.0,
		maxVehicleWidth:  4.0,
		notes:            "Motorcycle parking space",
	},
	{
		spaceNumber:      "P-007",
		location:         "Building C, Level 2",
		monthlyFeeCents:  10000,
		typ:              domain.ParkingPremium,
		status:           domain.ParkingReserved,
		covered:          true,
		electricCharging: true,
		maxVehicleLength: 25.0,
		maxVehicleWidth:  10.0,
		notes:            "Premium covered parking with electric charging",
	},
	{
		spaceNumber:      "P-008",
		location:         "Building A, Level 2",
		monthlyFeeCents:  5500,
		typ:              domain.ParkingStandard,
		status:           domain.ParkingMaintenance,
		maxVehicleLength: 18.0,
		maxVehicleWidth:  8.0,
		notes:            "Under maintenance - lighting repair",
	},
}
