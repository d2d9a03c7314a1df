package cli

const usageText = `
CoinKeeper Client

Usage:
  coinkeeper COMMAND [ARGS]

Session:
  register                    Register new user
  login                       Login to server
  logout                      Logout (local session is removed even if the server is down)
  status                      Show session and pending sync count

Catalog:
  rulers [-p <periodID>]      List rulers (optionally of one period)
  coins <rulerID>             List coins of a ruler
  coins -d TYPE <rulerID>     List coins of a denomination group
                              (gold, silver_ruble, silver_small, copper, commemorative, token)
  denominations <rulerID>     Show denomination groups of a ruler
  coin <coinID>               Show catalog coin details
  search <query>              Search coins (min 3 characters)

Collection:
  add [flags] <coinID>        Add a catalog coin to the collection
  add -w <coinID>             Add to the wishlist instead
  list [-w]                   List collection (or wishlist with -w)
  update [flags] <id>         Update a collection record
  remove <coinID>             Remove a catalog coin (soft delete, synced later)
  move <id>                   Move a wishlist record into the collection
  stats                       Show collection statistics
  clear                       Remove every record

Sync:
  sync                        Push pending local changes to the server

Examples:
  coinkeeper login
  coinkeeper rulers
  coinkeeper coins nicholas2
  coinkeeper coins -d gold nicholas2
  coinkeeper search "рубль 1913"
  coinkeeper add -condition XF -price 42000 nicholas2_5rub_1897
  coinkeeper list
  coinkeeper sync
`

const rulersListTemplate = `
=== Rulers ===
{{- range . }}

{{ .Name }} ({{ .StartYear }}-{{ .EndYear }})
   ID:    {{ .ID }}
   {{- if .Title }}
   Title: {{ .Title }}
   {{- end }}
{{- end }}
`

const coinsListTemplate = `
{{- if eq (len .) 0 }}
No coins found.
{{- else }}
Found {{ len . }} coin(s):
{{- range . }}

{{ .Year }}  {{ .Name }}
   ID:     {{ .ID }}
   Metal:  {{ .Metal }}
   {{- if .Rarity }}
   Rarity: {{ .Rarity }}
   {{- end }}
   {{- if .CatalogNumber }}
   Cat.N:  {{ .CatalogNumber }}
   {{- end }}
{{- end }}
{{- end }}
`

const coinDetailTemplate = `
=== {{ .Name }} ===

ID:            {{ .ID }}
{{- if .RulerName }}
Ruler:         {{ .RulerName }}
{{- end }}
Year:          {{ .Year }}
Denomination:  {{ .Denomination }}
Metal:         {{ .Metal }}
{{- if .Weight }}
Weight:        {{ .Weight }} g
{{- end }}
{{- if .Diameter }}
Diameter:      {{ .Diameter }} mm
{{- end }}
{{- if .Mint }}
Mint:          {{ .Mint }}{{ if .MintMark }} ({{ .MintMark }}){{ end }}
{{- end }}
{{- if .Mintage }}
Mintage:       {{ .Mintage }}
{{- end }}
{{- if .Rarity }}
Rarity:        {{ .Rarity }}
{{- end }}
{{- if .CatalogNumber }}
Catalog N:     {{ .CatalogNumber }}
{{- end }}
{{- if .EstimatedValueMax }}
Estimated:     {{ .EstimatedValueMin }} - {{ .EstimatedValueMax }}
{{- end }}
{{- if .Description }}

{{ .Description }}
{{- end }}
`

const denominationsTemplate = `
=== Denomination groups ===
{{- range . }}
{{ printf "%-22s" .DisplayName }} {{ .Count }} coin(s)   [{{ .Type }}]
{{- end }}
`

const collectionListTemplate = `
{{- if eq (len .Coins) 0 }}
{{ if .Wishlist }}Wishlist is empty.{{ else }}Collection is empty.{{ end }}

Use 'coinkeeper add <coinID>' to add your first coin.
{{- else }}
Found {{ len .Coins }} record(s):
{{- range .Coins }}

{{ if .CatalogCoin }}{{ .CatalogCoin.Name }} ({{ .CatalogCoin.Year }}){{ else }}{{ .CatalogCoinID }}{{ end }}
   ID:        {{ .ID }}
   {{- if .Condition }}
   Condition: {{ .Condition }}
   {{- end }}
   {{- if .Grade }}
   Grade:     {{ .Grade }}
   {{- end }}
   {{- if .PurchasePrice }}
   Price:     {{ .PurchasePrice }}
   {{- end }}
   {{- if .Notes }}
   Notes:     {{ .Notes }}
   {{- end }}
   {{- if .NeedsSync }}
   Sync:      pending
   {{- end }}
{{- end }}
{{- end }}
`

const statsTemplate = `
=== Collection statistics ===

Coins in collection:  {{ .CollectionCount }}
Wishlist:             {{ .WishlistCount }}
Total value:          {{ printf "%.2f" .TotalValue }}
Purchase total:       {{ printf "%.2f" .TotalPurchasePrice }}
Profit/loss:          {{ printf "%.2f" .ProfitLoss }} ({{ printf "%.2f" .ProfitLossPercent }}%)
`
