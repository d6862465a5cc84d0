package site

import "github.com/gibbs-towing/fleetsite/internal/models"

// Brand details shown across the page and used by the assistant's fallbacks
const (
	BrandName    = "Gibbs Towing & Recovery"
	BrandPhone   = "678-508-9243"
	BrandAddress = "2884 Martin Luther King Drive Atlanta GA 30311"
	BrandEmail   = "dispatch@atlantatowing247.com"
	BrandWebsite = "Atlantatowing247.com"
)

// AdminPath is the obscure path that reveals the admin surface. It hides the
// editor from casual visitors and nothing more.
const AdminPath = "/admin-fleet-2024"

// PlaceholderImage is appended by the editor's add action.
var PlaceholderImage = models.GalleryImage{
	URL:   "https://images.unsplash.com/photo-1605218427368-35b0185e4d2e?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80",
	Title: "New Fleet Image",
}

// FleetImages is the compiled-in gallery used when neither the store nor the
// fleet data resource has any images.
func FleetImages() []models.GalleryImage {
	return []models.GalleryImage{
		{URL: "/images/gibbs-truck-1.png", Title: "Gibbs Fleet - Commercial Bus Recovery"},
		{URL: "/images/gibbs-truck-2.png", Title: "Gibbs Light-Duty Wrecker - Night Operations"},
		{URL: "/images/gibbs-truck-3.png", Title: "Gibbs Heavy-Duty Wrecker Unit"},
		{URL: "/images/gibbs-truck-4.png", Title: "Gibbs Freightliner Tractor Unit"},
		{URL: "/images/FullSizeRender.jpeg", Title: "Rail King Transport - Landoll 440 Flatbed"},
		{URL: "/images/FullSizeRender_1_.jpeg", Title: "Rail King Equipment - Secured for Transport"},
		{URL: "/images/FullSizeRender_2_.jpeg", Title: "Gibbs Truck Hauling Rail King - Night Ops"},
		{URL: "/images/FullSizeRender_3_.jpeg", Title: "Rail King Heavy Equipment - Front View"},
		{URL: "/images/FullSizeRender_4_ (1).jpeg", Title: "Rail King Vehicle - Urban Night Recovery"},
		{URL: "/images/FullSizeRender_5_.jpeg", Title: "Heavy Equipment Flatbed Transport"},
	}
}

// Service is one entry of the services section
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FAQ is one question of the FAQ section
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Content is the page copy served to the front end
type Content struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Website   string    `json:"website"`
	Locations []string  `json:"locations"`
	Services  []Service `json:"services"`
	FAQs      []FAQ     `json:"faqs"`
}

func PageContent() Content {
	return Content{
		Name:      BrandName,
		Phone:     BrandPhone,
		Address:   BrandAddress,
		Email:     BrandEmail,
		Website:   BrandWebsite,
		Locations: []string{"Headquartered in Georgia", "Serving the Southeast", "Nationwide Logistics Support"},
		Services: []Service{
			{Name: "Commercial Load Shift Logistics", Description: "Specialized re-balancing and cargo securement for DOT compliance and long-haul logistics safety."},
			{Name: "Multi-State Trans Load Response", Description: "Rapid cargo transfer response between vehicles or facilities to maintain supply chain continuity."},
			{Name: "Heavy Fleet Response", Description: "Mission-critical 12/24V high-amperage assistance for commercial fleets and equipment."},
			{Name: "Fleet Asset Access", Description: "Damage-free rapid entry for commercial semi-tractors and logistics vehicles."},
			{Name: "Asset Decking/Undecking", Description: "Strategic stacking and transport management for fleet chassis and trailer systems."},
			{Name: "Rotator Recovery Response", Description: "Advanced heavy recovery managed by high-capacity rotator systems for complex logistics scenarios."},
		},
		FAQs: []FAQ{
			{
				Question: "What is your geographic coverage for commercial recovery?",
				Answer:   "Gibbs Towing & Recovery is headquartered in Georgia and serves as a primary response team for the entire Southeast. We also support long-distance, multi-state, and nationwide logistics operations for specialty contracts.",
			},
			{
				Question: "How do you manage load shifts and cargo transfers?",
				Answer:   "We specialize in commercial load shifts and multi-state trans load logistics. Our team manages the entire process from balancing to DOT compliance, ensuring fleet assets remain operational and legal.",
			},
			{
				Question: "Is your dispatch operational for nationwide contracts?",
				Answer:   "Our dispatch center is operational 24/7, 365 days a year. We provide dedicated logistics support for fleet managers and contract partners across state lines.",
			},
			{
				Question: "What recovery equipment is available for complex jobs?",
				Answer:   "We maintain a high-end fleet including advanced rotators and heavy-duty wreckers capable of complex recoveries, infrastructure support, and multi-unit transport management.",
			},
		},
	}
}
