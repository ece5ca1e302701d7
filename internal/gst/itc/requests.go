package itc

// ExpenseCategory discriminates the Section 17(5) blocked-credit
// categories. Each category has its own typed request so the exception
// attributes are validated per category rather than read out of an
// open record.
type ExpenseCategory string

const (
	CategoryMotorVehicle        ExpenseCategory = "motor_vehicle"
	CategoryFoodBeverage        ExpenseCategory = "food_beverage"
	CategoryClubMembership      ExpenseCategory = "club_membership"
	CategoryInsurance           ExpenseCategory = "health_life_insurance"
	CategoryWorksContract       ExpenseCategory = "works_contract"
	CategoryPersonalConsumption ExpenseCategory = "personal_consumption"
	CategoryCSR                 ExpenseCategory = "csr"
	CategoryLostGoods           ExpenseCategory = "lost_goods"
	CategoryGeneral             ExpenseCategory = "general"
)

// CategoryRequest is the tagged union over per-category requests.
type CategoryRequest interface {
	Category() ExpenseCategory
}

// VehicleUsage describes what a motor vehicle is used for.
type VehicleUsage string

const (
	UsageTaxiService        VehicleUsage = "taxi_service"
	UsagePassengerTransport VehicleUsage = "passenger_transport"
	UsageDrivingSchool      VehicleUsage = "driving_school"
	UsageEmployeeTransport  VehicleUsage = "employee_transport"
	UsageGeneralBusiness    VehicleUsage = "general_business"
)

// MotorVehicleRequest: vehicles seating 13 or fewer are blocked under
// 17(5)(a) unless used for a taxi/passenger-transport business.
type MotorVehicleRequest struct {
	SeatingCapacity int
	Usage           VehicleUsage
}

func (MotorVehicleRequest) Category() ExpenseCategory { return CategoryMotorVehicle }

// FoodBeverageRequest: blocked under 17(5)(b)(i) unless providing the
// food is a legal obligation (e.g., a factory-law canteen mandate).
type FoodBeverageRequest struct {
	LegallyMandated bool
	MandateNote     string
}

func (FoodBeverageRequest) Category() ExpenseCategory { return CategoryFoodBeverage }

// ClubMembershipRequest: health and fitness club memberships, blocked
// with no exception.
type ClubMembershipRequest struct {
	MembershipKind string
}

func (ClubMembershipRequest) Category() ExpenseCategory { return CategoryClubMembership }

// InsuranceRequest: health or life insurance premiums, blocked with no
// exception.
type InsuranceRequest struct {
	PolicyKind string // "health" or "life"
}

func (InsuranceRequest) Category() ExpenseCategory { return CategoryInsurance }

// WorksContractRequest: works contract / construction of immovable
// property, blocked unless the result is plant and machinery used in
// further taxable supply (e.g., rented out).
type WorksContractRequest struct {
	ResultIsPlantMachinery bool
	UsedInTaxableSupply    bool
}

func (WorksContractRequest) Category() ExpenseCategory { return CategoryWorksContract }

// PersonalConsumptionRequest: goods or services consumed personally.
// A business-use percentage above zero routes to the proportionate
// rule instead of a full block.
type PersonalConsumptionRequest struct {
	BusinessUsePercentage float64
}

func (PersonalConsumptionRequest) Category() ExpenseCategory { return CategoryPersonalConsumption }

// CSRRequest: corporate social responsibility expenditure, never
// eligible.
type CSRRequest struct {
	ProjectNote string
}

func (CSRRequest) Category() ExpenseCategory { return CategoryCSR }

// GoodsLossReason describes why goods left the business untaxed.
type GoodsLossReason string

const (
	LossLost       GoodsLossReason = "lost"
	LossStolen     GoodsLossReason = "stolen"
	LossDestroyed  GoodsLossReason = "destroyed"
	LossWrittenOff GoodsLossReason = "written_off"
)

// LostGoodsRequest: lost, stolen, destroyed or written-off goods,
// never eligible.
type LostGoodsRequest struct {
	Reason GoodsLossReason
}

func (LostGoodsRequest) Category() ExpenseCategory { return CategoryLostGoods }

// GeneralRequest is any transaction outside the blocked categories;
// eligible by default.
type GeneralRequest struct {
	Description string
}

func (GeneralRequest) Category() ExpenseCategory { return CategoryGeneral }
