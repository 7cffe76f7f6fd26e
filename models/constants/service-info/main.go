package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "SNP-IT Lineage Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the snpit lineage classification API!"
	SERVICE_DESCRIPTION ServiceInfo = "Classifies the lineage of M. tuberculosis samples from VCF or FASTA input."

	SERVICE_ARTIFACT    ServiceInfo = "snpit"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("tb.lineage:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
