package reservoir

// City is a named occupancy page to scrape
type City struct {
	Name string
	URL  string
}

const (
	AnkaraURL   = "https://www.turkiye.gov.tr/asvk-baraj-doluluk-oranlari"
	IstanbulURL = "https://www.turkiye.gov.tr/istanbul-su-ve-kanalizasyon-idaresi-baraj-doluluk-oranlari"
	IzmirURL    = "https://www.turkiye.gov.tr/izmir-su-ve-kanalizasyon-idaresi-baraj-doluluk-oranlari?hizmet=Ekrani"
	TrabzonURL  = "https://www.turkiye.gov.tr/trabzon-icmesuyu-ve-kanalizasyon-idaresi-baraj-doluluk-oranlari-sorgulama?hizmet=Ekrani"
)

// DefaultCities returns the pages visited by a default run, in output order.
// A fresh slice is returned on every call.
func DefaultCities() []City {
	return []City{
		{Name: "ankara", URL: AnkaraURL},
		{Name: "istanbul", URL: IstanbulURL},
		{Name: "izmir", URL: IzmirURL},
		{Name: "trabzon", URL: TrabzonURL},
	}
}
